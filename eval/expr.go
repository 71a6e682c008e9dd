// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

package eval

import (
	"context"
	"unicode/utf8"

	"github.com/go-esl/esl/ast"
	"github.com/go-esl/esl/hostbridge"
	"github.com/go-esl/esl/namespace"
	"github.com/go-esl/esl/token"
	"github.com/go-esl/esl/value"
)

// evalExpr evaluates expr to a single value. Expressions that can yield
// multiple results (function calls) are truncated to their first result;
// use [Evaluator.evalExprMulti] in the few contexts where esl keeps all
// of them (every entry of a generic-for's explist, the last argument of a
// call, and a table constructor's trailing field).
func (e *Evaluator) evalExpr(ctx context.Context, expr ast.Expr, ns *namespace.Namespace) (value.Value, error) {
	vs, err := e.evalExprMulti(ctx, expr, ns)
	if err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return value.Nil{}, nil
	}
	return vs[0], nil
}

func (e *Evaluator) evalExprMulti(ctx context.Context, expr ast.Expr, ns *namespace.Namespace) ([]value.Value, error) {
	switch ex := expr.(type) {
	case *ast.FunctionCall:
		return e.evalFunctionCall(ctx, ex, ns)
	default:
		v, err := e.evalExprOne(ctx, expr, ns)
		if err != nil {
			return nil, err
		}
		return []value.Value{v}, nil
	}
}

func (e *Evaluator) evalExprOne(ctx context.Context, expr ast.Expr, ns *namespace.Namespace) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.Constant:
		return e.evalConstant(ex)
	case *ast.Name:
		return value.Str(ex.Value), nil
	case *ast.Variable:
		return e.evalVariable(ctx, ex, ns)
	case *ast.FunctionExpr:
		return e.makeClosure("", ex.Body, ns), nil
	case *ast.TableExpr:
		return e.evalTableExpr(ctx, ex, ns)
	case *ast.Logical:
		return e.evalLogical(ctx, ex, ns)
	case *ast.Relational:
		return e.evalRelational(ctx, ex, ns)
	case *ast.Append:
		return e.evalAppend(ctx, ex, ns)
	case *ast.Arithmetic:
		return e.evalArithmetic(ctx, ex, ns)
	case *ast.Unary:
		return e.evalUnary(ctx, ex, ns)
	default:
		return nil, newTypeError(expr.Line(), "unsupported expression %T", expr)
	}
}

func (e *Evaluator) evalConstant(c *ast.Constant) (value.Value, error) {
	switch c.Kind {
	case token.Nil:
		return value.Nil{}, nil
	case token.True:
		return value.Bool(true), nil
	case token.False:
		return value.Bool(false), nil
	case token.Int:
		return parseIntLiteral(c.Value), nil
	case token.String:
		return value.Str(c.Value), nil
	default:
		return nil, newTypeError(c.Line(), "unsupported constant kind %v", c.Kind)
	}
}

func parseIntLiteral(s string) value.Int {
	var n int64
	for i := 0; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	return value.Int(n)
}

// evalVariable reads a bare name from the scope chain, or reads
// obj[key]/obj.key through a table or host object.
func (e *Evaluator) evalVariable(ctx context.Context, v *ast.Variable, ns *namespace.Namespace) (value.Value, error) {
	key, err := e.variableKey(ctx, v, ns)
	if err != nil {
		return nil, err
	}

	if v.Left == nil {
		nameStr, ok := key.(value.Str)
		if !ok {
			return nil, newTypeError(v.Line(), "invalid variable name")
		}
		val, found := ns.GetVar(string(nameStr))
		if !found {
			return value.Nil{}, nil
		}
		return val, nil
	}

	left, err := e.evalExpr(ctx, v.Left, ns)
	if err != nil {
		return nil, err
	}
	return e.getIndexed(v.Line(), left, key)
}

func (e *Evaluator) getIndexed(line token.Position, left, key value.Value) (value.Value, error) {
	switch obj := left.(type) {
	case *value.Table:
		return obj.Get(key), nil
	case value.HostObject:
		// esl first tries item access (obj[key]), falling back to
		// attribute access for string keys.
		v, err := hostbridge.GetItem(obj, key)
		if err == hostbridge.ErrAccessDenied {
			return nil, newAccessError(line, "access to '%s' is denied", value.Repr(key))
		}
		if err == nil && v.Type() != value.TypeNil {
			return v, nil
		}
		if s, ok := key.(value.Str); ok {
			av, aerr := hostbridge.GetAttribute(obj, string(s))
			if aerr == hostbridge.ErrAccessDenied {
				return nil, newAccessError(line, "access to '%s' is denied", s)
			}
			if aerr == nil {
				return av, nil
			}
		}
		return value.Nil{}, nil
	case value.Nil:
		return nil, newTypeError(line, "attempt to index a nil value")
	default:
		return nil, newTypeError(line, "attempt to index a %s value", value.TypeName(left))
	}
}

func (e *Evaluator) evalTableExpr(ctx context.Context, t *ast.TableExpr, ns *namespace.Namespace) (value.Value, error) {
	tbl := value.NewTable()
	nextIndex := value.Int(1)
	for i, f := range t.Fields {
		if f.Name != nil {
			key, err := e.evalExpr(ctx, f.Name, ns)
			if err != nil {
				return nil, err
			}
			val, err := e.evalExpr(ctx, f.Expr, ns)
			if err != nil {
				return nil, err
			}
			tbl.Set(key, val)
			continue
		}
		// The final array-style field keeps every result of a trailing
		// function call, matching Lua's table-constructor semantics.
		if i == len(t.Fields)-1 {
			vals, err := e.evalExprMulti(ctx, f.Expr, ns)
			if err != nil {
				return nil, err
			}
			for _, v := range vals {
				tbl.Set(nextIndex, v)
				nextIndex++
			}
			continue
		}
		val, err := e.evalExpr(ctx, f.Expr, ns)
		if err != nil {
			return nil, err
		}
		tbl.Set(nextIndex, val)
		nextIndex++
	}
	return tbl, nil
}

func (e *Evaluator) evalLogical(ctx context.Context, l *ast.Logical, ns *namespace.Namespace) (value.Value, error) {
	left, err := e.evalExpr(ctx, l.Left, ns)
	if err != nil {
		return nil, err
	}
	if l.Op == ast.LogicalAnd {
		if !left.Truthy() {
			return left, nil
		}
		return e.evalExpr(ctx, l.Right, ns)
	}
	if left.Truthy() {
		return left, nil
	}
	return e.evalExpr(ctx, l.Right, ns)
}

func (e *Evaluator) evalRelational(ctx context.Context, r *ast.Relational, ns *namespace.Namespace) (value.Value, error) {
	left, err := e.evalExpr(ctx, r.Left, ns)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ctx, r.Right, ns)
	if err != nil {
		return nil, err
	}

	if r.Op == ast.RelEq {
		return value.Bool(value.Equal(left, right)), nil
	}
	if r.Op == ast.RelNe {
		return value.Bool(!value.Equal(left, right)), nil
	}

	li, lok := left.(value.Int)
	ri, rok := right.(value.Int)
	if lok && rok {
		switch r.Op {
		case ast.RelLt:
			return value.Bool(li < ri), nil
		case ast.RelGt:
			return value.Bool(li > ri), nil
		case ast.RelLe:
			return value.Bool(li <= ri), nil
		case ast.RelGe:
			return value.Bool(li >= ri), nil
		}
	}
	ls, lsok := left.(value.Str)
	rs, rsok := right.(value.Str)
	if lsok && rsok {
		switch r.Op {
		case ast.RelLt:
			return value.Bool(ls < rs), nil
		case ast.RelGt:
			return value.Bool(ls > rs), nil
		case ast.RelLe:
			return value.Bool(ls <= rs), nil
		case ast.RelGe:
			return value.Bool(ls >= rs), nil
		}
	}
	return nil, newTypeError(r.Line(), "cannot compare %s with %s", value.TypeName(left), value.TypeName(right))
}

// evalAppend is the `..` operator: any number or string may be
// concatenated, always producing a string. There is no implicit numeric
// coercion beyond stringification.
func (e *Evaluator) evalAppend(ctx context.Context, a *ast.Append, ns *namespace.Namespace) (value.Value, error) {
	left, err := e.evalExpr(ctx, a.Left, ns)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ctx, a.Right, ns)
	if err != nil {
		return nil, err
	}
	if !concatable(left) || !concatable(right) {
		return nil, newTypeError(a.Line(), "cannot concatenate %s and %s", value.TypeName(left), value.TypeName(right))
	}
	return value.Str(left.String() + right.String()), nil
}

func concatable(v value.Value) bool {
	switch v.Type() {
	case value.TypeString, value.TypeInt:
		return true
	default:
		return false
	}
}

func (e *Evaluator) evalArithmetic(ctx context.Context, a *ast.Arithmetic, ns *namespace.Namespace) (value.Value, error) {
	left, err := e.evalExpr(ctx, a.Left, ns)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ctx, a.Right, ns)
	if err != nil {
		return nil, err
	}
	li, lok := left.(value.Int)
	ri, rok := right.(value.Int)
	if !lok || !rok {
		return nil, newTypeError(a.Line(), "attempt to perform arithmetic on a %s value", value.TypeName(pickNonInt(left, right)))
	}

	switch a.Op {
	case ast.ArithAdd:
		return li + ri, nil
	case ast.ArithSub:
		return li - ri, nil
	case ast.ArithMul:
		return li * ri, nil
	case ast.ArithDiv:
		if ri == 0 {
			return nil, newTypeError(a.Line(), "attempt to divide by zero")
		}
		// esl's value model has no floating-point type, so division
		// truncates toward zero (Go's native integer division).
		return li / ri, nil
	case ast.ArithMod:
		if ri == 0 {
			return nil, newTypeError(a.Line(), "attempt to perform 'n%%0'")
		}
		return floorMod(li, ri), nil
	case ast.ArithPow:
		return intPow(a.Line(), li, ri)
	default:
		return nil, newTypeError(a.Line(), "unsupported arithmetic operator")
	}
}

func pickNonInt(a, b value.Value) value.Value {
	if _, ok := a.(value.Int); !ok {
		return a
	}
	return b
}

// floorMod implements Lua's floored modulo: `a % b == a - floor(a/b)*b`.
func floorMod(a, b value.Int) value.Int {
	m := a % b
	if m != 0 && (m^b) < 0 {
		m += b
	}
	return m
}

func intPow(line token.Position, base, exp value.Int) (value.Value, error) {
	if exp < 0 {
		return nil, newTypeError(line, "exponent must be non-negative")
	}
	result := value.Int(1)
	for i := value.Int(0); i < exp; i++ {
		result *= base
	}
	return result, nil
}

func (e *Evaluator) evalUnary(ctx context.Context, u *ast.Unary, ns *namespace.Namespace) (value.Value, error) {
	operand, err := e.evalExpr(ctx, u.Expr, ns)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case ast.UnaryNot:
		return value.Bool(!operand.Truthy()), nil
	case ast.UnaryNeg:
		i, ok := operand.(value.Int)
		if !ok {
			return nil, newTypeError(u.Line(), "attempt to perform arithmetic on a %s value", value.TypeName(operand))
		}
		return -i, nil
	case ast.UnaryLen:
		switch v := operand.(type) {
		case value.Str:
			// Length in codepoints, not bytes.
			return value.Int(utf8.RuneCountInString(string(v))), nil
		case *value.Table:
			return v.Len(), nil
		default:
			return nil, newTypeError(u.Line(), "attempt to get length of a %s value", value.TypeName(operand))
		}
	default:
		return nil, newTypeError(u.Line(), "unsupported unary operator")
	}
}
