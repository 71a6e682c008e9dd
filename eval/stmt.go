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

// evalBlock evaluates every statement of blk in a fresh child namespace,
// stopping early once a break or return takes effect. The returned slice
// is non-nil only when a return statement fired somewhere inside blk (or
// a nested block that propagated up through it).
func (e *Evaluator) evalBlock(ctx context.Context, blk *ast.Block, ns *namespace.Namespace) ([]value.Value, error) {
	e.pushLine(blk.Line())
	defer e.popLine()

	child := ns.Child()
	var result []value.Value
	for _, stmt := range blk.Stmts {
		if e.returning || e.breaking {
			break
		}
		vals, err := e.evalStmt(ctx, stmt, child)
		if err != nil {
			return nil, e.traceError(err, stmt.Line())
		}
		if vals != nil {
			result = vals
		}
	}
	return result, nil
}

func (e *Evaluator) evalStmt(ctx context.Context, stmt ast.Stmt, ns *namespace.Namespace) ([]value.Value, error) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return nil, e.evalAssignment(ctx, s, ns)
	case *ast.DoBlock:
		return e.evalBlock(ctx, s.Body, ns)
	case *ast.While:
		return e.evalWhile(ctx, s, ns)
	case *ast.If:
		return e.evalIf(ctx, s, ns)
	case *ast.NumericFor:
		return e.evalNumericFor(ctx, s, ns)
	case *ast.GenericFor:
		return e.evalGenericFor(ctx, s, ns)
	case *ast.FunctionDecl:
		return nil, e.evalFunctionDecl(ctx, s, ns)
	case *ast.Break:
		if e.loopDepth == 0 {
			return nil, newTypeError(stmt.Line(), "break outside a loop")
		}
		e.breaking = true
		return nil, nil
	case *ast.Return:
		return e.evalReturn(ctx, s, ns)
	case *ast.ExprStmt:
		_, err := e.evalFunctionCall(ctx, s.Call, ns)
		return nil, err
	default:
		return nil, newTypeError(stmt.Line(), "unsupported statement %T", stmt)
	}
}

func (e *Evaluator) evalReturn(ctx context.Context, s *ast.Return, ns *namespace.Namespace) ([]value.Value, error) {
	e.pushLine(s.Line())
	defer e.popLine()

	vals := make([]value.Value, len(s.Exprs))
	for i, expr := range s.Exprs {
		v, err := e.evalExpr(ctx, expr, ns)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	e.returning = true
	if len(vals) == 0 {
		return []value.Value{value.Nil{}}, nil
	}
	return vals, nil
}

func (e *Evaluator) evalWhile(ctx context.Context, s *ast.While, ns *namespace.Namespace) ([]value.Value, error) {
	e.pushLine(s.Line())
	defer e.popLine()
	e.loopDepth++
	defer func() { e.loopDepth-- }()

	check := func() (bool, error) {
		v, err := e.evalExpr(ctx, s.Cond, ns)
		if err != nil {
			return false, err
		}
		return v.Truthy(), nil
	}

	var result []value.Value
	for {
		if s.CheckBefore {
			ok, err := check()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
		}

		vals, err := e.evalBlock(ctx, s.Body, ns)
		if err != nil {
			return nil, err
		}
		if vals != nil {
			result = vals
		}
		if e.breaking || e.returning {
			break
		}

		if !s.CheckBefore {
			// repeat ... until cond: stop once cond holds.
			ok, err := check()
			if err != nil {
				return nil, err
			}
			if ok {
				break
			}
		}
	}
	e.breaking = false
	return result, nil
}

func (e *Evaluator) evalIf(ctx context.Context, s *ast.If, ns *namespace.Namespace) ([]value.Value, error) {
	e.pushLine(s.Line())
	defer e.popLine()

	cond, err := e.evalExpr(ctx, s.Cond, ns)
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return e.evalBlock(ctx, s.Then, ns)
	}
	for _, elseif := range s.ElseIfs {
		econd, err := e.evalExpr(ctx, elseif.Cond, ns)
		if err != nil {
			return nil, err
		}
		if econd.Truthy() {
			return e.evalBlock(ctx, elseif.Body, ns)
		}
	}
	if s.Else != nil {
		return e.evalBlock(ctx, s.Else, ns)
	}
	return nil, nil
}

func (e *Evaluator) evalNumericFor(ctx context.Context, s *ast.NumericFor, ns *namespace.Namespace) ([]value.Value, error) {
	e.pushLine(s.Line())
	defer e.popLine()
	e.loopDepth++
	defer func() { e.loopDepth-- }()

	child := ns.Child()

	start, err := e.evalIntExpr(ctx, s.Start, child)
	if err != nil {
		return nil, err
	}
	limit, err := e.evalIntExpr(ctx, s.Limit, child)
	if err != nil {
		return nil, err
	}
	step := value.Int(1)
	if s.Step != nil {
		step, err = e.evalIntExpr(ctx, s.Step, child)
		if err != nil {
			return nil, err
		}
	}
	if step == 0 {
		return nil, newTypeError(s.Line(), "'for' step is zero")
	}

	var result []value.Value
	for i := start; (step > 0 && i <= limit) || (step < 0 && i >= limit); i += step {
		if e.breaking {
			break
		}
		child.SetVar(s.Name, i, true)
		vals, err := e.evalBlock(ctx, s.Body, child)
		if err != nil {
			return nil, err
		}
		if vals != nil {
			result = vals
		}
		if e.breaking || e.returning {
			break
		}
	}
	e.breaking = false
	return result, nil
}

func (e *Evaluator) evalIntExpr(ctx context.Context, expr ast.Expr, ns *namespace.Namespace) (value.Int, error) {
	v, err := e.evalExpr(ctx, expr, ns)
	if err != nil {
		return 0, err
	}
	i, ok := v.(value.Int)
	if !ok {
		return 0, newTypeError(expr.Line(), "'for' expression must be a number, got %s", value.TypeName(v))
	}
	return i, nil
}

// evalGenericFor implements Lua's stateless-iterator protocol
// `for names in exprs do block end`: exprs evaluates to (iterator,
// state, control); the loop calls iterator(state, control) each
// iteration until it returns nil for the first result.
func (e *Evaluator) evalGenericFor(ctx context.Context, s *ast.GenericFor, ns *namespace.Namespace) ([]value.Value, error) {
	e.pushLine(s.Line())
	defer e.popLine()
	e.loopDepth++
	defer func() { e.loopDepth-- }()

	child := ns.Child()

	var params []value.Value
	for _, expr := range s.Exprs {
		vs, err := e.evalExprMulti(ctx, expr, child)
		if err != nil {
			return nil, err
		}
		params = append(params, vs...)
	}
	for len(params) < 3 {
		params = append(params, value.Nil{})
	}
	iterFn, state, control := params[0], params[1], params[2]

	// A host value advertising an async- or sync-iterator capability is
	// driven directly, bypassing the (fun, state, control)
	// stateless-iterator protocol entirely.
	if ho, ok := iterFn.(value.HostObject); ok {
		if ai, ok := ho.Native.(hostbridge.AsyncIterable); ok {
			return e.runHostIterator(ctx, s, child, ai.AsyncIterator())
		}
		if it, ok := ho.Native.(hostbridge.Iterable); ok {
			return e.runHostIterator(ctx, s, child, it.Iterator())
		}
	}

	var result []value.Value
	for {
		if e.breaking {
			break
		}
		rets, err := e.callValue(ctx, s.Line(), iterFn, []value.Value{state, control})
		if err != nil {
			return nil, err
		}
		if len(rets) == 0 || rets[0].Type() == value.TypeNil {
			break
		}
		control = rets[0]
		for i, name := range s.Names {
			if i < len(rets) {
				child.SetVar(name, rets[i], true)
			} else {
				child.SetVar(name, value.Nil{}, true)
			}
		}
		vals, err := e.evalBlock(ctx, s.Body, child)
		if err != nil {
			return nil, err
		}
		if vals != nil {
			result = vals
		}
		if e.breaking || e.returning {
			break
		}
	}
	e.breaking = false
	return result, nil
}

// runHostIterator drives a host capability iterator (sync or async; the
// signature is identical, only the suspension cost differs) to
// completion, binding the declared names to (nil, value) each step: the
// host iterator's own notion of key is used only to advance the cursor
// between calls, never exposed to the script.
func (e *Evaluator) runHostIterator(ctx context.Context, s *ast.GenericFor, child *namespace.Namespace, next func(ctx context.Context, control value.Value) (value.Value, value.Value, bool, error)) ([]value.Value, error) {
	var control value.Value = value.Nil{}
	var result []value.Value
	for {
		if e.breaking {
			break
		}
		key, val, ok, err := next(ctx, control)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		control = key

		emitted := []value.Value{value.Nil{}, val}
		for i, name := range s.Names {
			if i < len(emitted) {
				child.SetVar(name, emitted[i], true)
			} else {
				child.SetVar(name, value.Nil{}, true)
			}
		}
		vals, err := e.evalBlock(ctx, s.Body, child)
		if err != nil {
			return nil, err
		}
		if vals != nil {
			result = vals
		}
		if e.breaking || e.returning {
			break
		}
	}
	e.breaking = false
	return result, nil
}

// evalAssignment evaluates every right-hand value first, left to right,
// and only then binds them to the left-hand targets in order, so
// `a, b = b, a` swaps. Assigning nil to a table/host item or attribute deletes it. An unequal
// count of names and values is permitted: missing values bind nil.
func (e *Evaluator) evalAssignment(ctx context.Context, s *ast.Assignment, ns *namespace.Namespace) error {
	e.pushLine(s.Line())
	defer e.popLine()

	values := make([]value.Value, len(s.LHS))
	for i := range s.LHS {
		if i < len(s.RHS) {
			v, err := e.evalExpr(ctx, s.RHS[i], ns)
			if err != nil {
				return err
			}
			values[i] = v
		} else {
			values[i] = value.Nil{}
		}
	}

	for i, target := range s.LHS {
		if err := e.assignVariable(ctx, target, values[i], s.Local, ns); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) assignVariable(ctx context.Context, v *ast.Variable, val value.Value, local bool, ns *namespace.Namespace) error {
	name, err := e.variableKey(ctx, v, ns)
	if err != nil {
		return err
	}

	if v.Left == nil {
		nameStr, ok := name.(value.Str)
		if !ok {
			return newTypeError(v.Line(), "cannot assign to a non-name variable")
		}
		ns.SetVar(string(nameStr), val, local)
		return nil
	}

	left, err := e.evalExpr(ctx, v.Left, ns)
	if err != nil {
		return err
	}
	return e.setIndexed(v.Line(), left, name, val)
}

// variableKey evaluates the key part of a Variable node: a literal Name
// for dotted/bare access, or an arbitrary expression for bracketed access.
func (e *Evaluator) variableKey(ctx context.Context, v *ast.Variable, ns *namespace.Namespace) (value.Value, error) {
	if n, ok := v.Name.(*ast.Name); ok {
		return value.Str(n.Value), nil
	}
	return e.evalExpr(ctx, v.Name, ns)
}

func (e *Evaluator) setIndexed(line token.Position, left, key, val value.Value) error {
	switch obj := left.(type) {
	case *value.Table:
		obj.Set(key, val)
		return nil
	case value.HostObject:
		return e.setHostIndexed(line, obj, key, val)
	default:
		return newTypeError(line, "cannot index a %s value", value.TypeName(left))
	}
}

// setHostIndexed writes (or, for a nil value, deletes) obj[key] on a host
// object, falling back from item access to attribute access for string
// keys the same way evalVariable's read path does.
func (e *Evaluator) setHostIndexed(line token.Position, obj value.HostObject, key, val value.Value) error {
	if val == nil {
		val = value.Nil{}
	}
	isNil := val.Type() == value.TypeNil

	var err error
	if isNil {
		err = hostbridge.DelItem(obj, key)
	} else {
		err = hostbridge.SetItem(obj, key, val)
	}
	if err == nil {
		return nil
	}
	if err == hostbridge.ErrAccessDenied {
		return newAccessError(line, "access to '%s' is denied", value.Repr(key))
	}
	if s, ok := key.(value.Str); ok {
		var aerr error
		if isNil {
			aerr = hostbridge.DelAttribute(obj, string(s))
		} else {
			aerr = hostbridge.SetAttribute(obj, string(s), val)
		}
		if aerr == nil {
			return nil
		}
		if aerr == hostbridge.ErrAccessDenied {
			return newAccessError(line, "access to '%s' is denied", s)
		}
		return newTypeError(line, "%s", aerr.Error())
	}
	return newTypeError(line, "%s", err.Error())
}

func (e *Evaluator) evalFunctionDecl(ctx context.Context, s *ast.FunctionDecl, ns *namespace.Namespace) error {
	e.pushLine(s.Line())
	defer e.popLine()

	fn := e.makeClosure(s.Name.Parts[len(s.Name.Parts)-1], s.Body, ns)

	if s.Local || len(s.Name.Parts) == 1 {
		ns.SetVar(s.Name.Parts[0], fn, s.Local)
		return nil
	}

	// Dotted/method declaration: walk parts[0:len-1] to find the owning
	// table, then store under the final part.
	container, ok := ns.GetVar(s.Name.Parts[0])
	if !ok {
		return newNameError(s.Line(), "name '%s' is not defined", s.Name.Parts[0])
	}
	for _, part := range s.Name.Parts[1 : len(s.Name.Parts)-1] {
		tbl, ok := container.(*value.Table)
		if !ok {
			return newTypeError(s.Line(), "cannot index a %s value", value.TypeName(container))
		}
		container = tbl.Get(value.Str(part))
	}
	tbl, ok := container.(*value.Table)
	if !ok {
		return newTypeError(s.Line(), "cannot index a %s value", value.TypeName(container))
	}
	tbl.Set(value.Str(s.Name.Parts[len(s.Name.Parts)-1]), fn)
	return nil
}
