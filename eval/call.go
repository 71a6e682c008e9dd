// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package eval

import (
	"context"

	"github.com/go-esl/esl/ast"
	"github.com/go-esl/esl/hostbridge"
	"github.com/go-esl/esl/namespace"
	"github.com/go-esl/esl/token"
	"github.com/go-esl/esl/value"
)

// makeClosure captures defEnv as the definition-time scope for a script
// function value; one closure is created per declaration and stored
// either as a variable or a table entry.
func (e *Evaluator) makeClosure(name string, body *ast.FunctionBody, defEnv *namespace.Namespace) *value.ScriptFunction {
	fn := &value.ScriptFunction{
		Name:   name,
		Params: body.Params,
		Body:   body.Body,
		Env:    defEnv,
	}
	fn.Call = func(ctx context.Context, args []value.Value) ([]value.Value, error) {
		return e.callScriptFunction(ctx, fn, body, defEnv, args)
	}
	return fn
}

// callScriptFunction binds args to body's parameters in a namespace
// nested under the function's definition-time scope (lexical, not
// dynamic, closure) and evaluates its body. Missing arguments bind to
// nil and extra arguments are discarded: esl's arity checking is
// intentionally permissive for script-to-script calls.
func (e *Evaluator) callScriptFunction(ctx context.Context, fn *value.ScriptFunction, body *ast.FunctionBody, defEnv *namespace.Namespace, args []value.Value) ([]value.Value, error) {
	call := defEnv.Child()
	for i, param := range body.Params {
		if i < len(args) {
			call.SetVar(param, args[i], true)
		} else {
			call.SetVar(param, value.Nil{}, true)
		}
	}

	e.callStack = append(e.callStack, CallFrame{Name: fn.Name, Line: body.Line()})
	savedReturning := e.returning
	e.returning = false
	defer func() {
		e.callStack = e.callStack[:len(e.callStack)-1]
		e.returning = savedReturning
	}()

	results, err := e.evalBlock(ctx, body.Body, call)
	if err != nil {
		return nil, err
	}
	if results == nil {
		return []value.Value{value.Nil{}}, nil
	}
	return results, nil
}

// evalFunctionCall evaluates a call or method-call expression, resolving
// the callee (and, for a method call, the receiver) before dispatching
// through [Evaluator.callValue].
func (e *Evaluator) evalFunctionCall(ctx context.Context, call *ast.FunctionCall, ns *namespace.Namespace) ([]value.Value, error) {
	e.pushLine(call.Line())
	defer e.popLine()

	callee, err := e.evalExpr(ctx, call.Callee, ns)
	if err != nil {
		return nil, err
	}

	var fn value.Value
	var args []value.Value
	if call.Colon {
		fn, err = e.getIndexed(call.Line(), callee, value.Str(call.MethodName))
		if err != nil {
			return nil, err
		}
		args = append(args, callee)
	} else {
		fn = callee
	}

	for i, a := range call.Args {
		if i == len(call.Args)-1 {
			vs, err := e.evalExprMulti(ctx, a, ns)
			if err != nil {
				return nil, err
			}
			args = append(args, vs...)
			continue
		}
		v, err := e.evalExpr(ctx, a, ns)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return e.callValue(ctx, call.Line(), fn, args)
}

// callValue dispatches fn(args...). A host callable flagged Async, or a
// value implementing hostbridge.AsyncCallable, suspends the evaluator at
// a hostbridge.RunAsync suspension point; every other kind is called
// in-line on the caller's goroutine.
func (e *Evaluator) callValue(ctx context.Context, line token.Position, fn value.Value, args []value.Value) ([]value.Value, error) {
	switch f := fn.(type) {
	case *value.ScriptFunction:
		return f.Call(ctx, args)
	case value.HostCallable:
		if f.Call == nil {
			return nil, newTypeError(line, "host callable '%s' has no implementation", f.Name)
		}
		if f.Async {
			return hostbridge.RunAsync(ctx, func(ctx context.Context) ([]value.Value, error) {
				return f.Call(ctx, args)
			})
		}
		return f.Call(ctx, args)
	case value.Nil:
		return nil, newTypeError(line, "attempt to call a nil value")
	default:
		if c, ok := fn.(hostbridge.AsyncCallable); ok {
			return hostbridge.RunAsync(ctx, func(ctx context.Context) ([]value.Value, error) {
				return c.CallAsync(ctx, args)
			})
		}
		if c, ok := fn.(hostbridge.Callable); ok {
			return c.Call(ctx, args)
		}
		return nil, newTypeError(line, "attempt to call a %s value", value.TypeName(fn))
	}
}
