// Copyright 2024 The zb Authors
// SPDX-License-Identifier: MIT

// Package parser turns a token stream into an [ast.Chunk].
//
// The grammar is driven by one token of lookahead with an explicit
// precedence cascade for expressions: a recursive-descent parser
// hand-written over a lexer, rather than a generated LALR table.
package parser

import (
	"fmt"

	"github.com/go-esl/esl/ast"
	"github.com/go-esl/esl/lexer"
	"github.com/go-esl/esl/token"
)

// Error reports a grammar mismatch at a given line. esl does not track
// columns (see token.Position), so the "near" token stands in for one.
type Error struct {
	Line token.Position
	Near string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s near %q", e.Line, e.Msg, e.Near)
}

// Parse parses a complete script into a [ast.Chunk].
func Parse(src string) (*ast.Chunk, error) {
	p := &parser{s: lexer.New(src)}
	if err := p.next(); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != token.EOF {
		return nil, p.errorf("unexpected %v", p.tok)
	}
	return ast.NewChunk(block.Line(), block), nil
}

type parser struct {
	s   *lexer.Scanner
	tok token.Token
}

func (p *parser) next() error {
	tok, err := p.s.Scan()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{Line: p.tok.Line, Near: p.tok.String(), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if p.tok.Kind != k {
		return token.Token{}, p.errorf("expected %v", k)
	}
	tok := p.tok
	if err := p.next(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *parser) accept(k token.Kind) (bool, error) {
	if p.tok.Kind != k {
		return false, nil
	}
	return true, p.next()
}

// block := (stat (';' | ) )* laststat?
// A `return` ends the block; a `break` may be followed by further
// statements, which are parsed but never reached. A nested scope is introduced by every Block node at evaluation time,
// not by the parser.
func (p *parser) block() (*ast.Block, error) {
	line := p.tok.Line
	var stmts []ast.Stmt
	for !p.blockFollows() {
		if p.tok.Kind == token.Return {
			s, err := p.returnStmt()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
			break
		}
		if p.tok.Kind == token.Break {
			s, err := p.breakStmt()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, s)
			continue
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	return ast.NewBlock(line, stmts), nil
}

// blockFollows reports whether the current token can only follow a block,
// i.e. one of the tokens that closes an enclosing construct, or EOF.
func (p *parser) blockFollows() bool {
	switch p.tok.Kind {
	case token.EOF, token.End, token.Else, token.Elseif, token.Until:
		return true
	default:
		return false
	}
}

func (p *parser) breakStmt() (ast.Stmt, error) {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	return ast.NewBreak(line), nil
}

func (p *parser) returnStmt() (ast.Stmt, error) {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	var exprs []ast.Expr
	if !p.blockFollows() && p.tok.Kind != token.Semi {
		var err error
		exprs, err = p.exprList()
		if err != nil {
			return nil, err
		}
	}
	if ok, err := p.accept(token.Semi); err != nil {
		return nil, err
	} else {
		_ = ok
	}
	return ast.NewReturn(line, exprs), nil
}

// statement parses one non-break/return statement, or nil for an empty
// statement (a bare ';').
func (p *parser) statement() (ast.Stmt, error) {
	line := p.tok.Line
	switch p.tok.Kind {
	case token.Semi:
		return nil, p.next()
	case token.Do:
		if err := p.next(); err != nil {
			return nil, err
		}
		blk, err := p.block()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.End); err != nil {
			return nil, err
		}
		return ast.NewDoBlock(line, blk), nil
	case token.While:
		return p.whileStmt()
	case token.Repeat:
		return p.repeatStmt()
	case token.If:
		return p.ifStmt()
	case token.For:
		return p.forStmt()
	case token.Function:
		return p.functionStmt()
	case token.Local:
		return p.localStmt()
	default:
		return p.exprOrAssignStmt(line)
	}
}

func (p *parser) whileStmt() (ast.Stmt, error) {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Do); err != nil {
		return nil, err
	}
	blk, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return ast.NewWhile(line, cond, blk, true), nil
}

func (p *parser) repeatStmt() (ast.Stmt, error) {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	blk, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Until); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(line, cond, blk, false), nil
}

func (p *parser) ifStmt() (ast.Stmt, error) {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Then); err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	var elseifs []*ast.ElseIf
	for p.tok.Kind == token.Elseif {
		eline := p.tok.Line
		if err := p.next(); err != nil {
			return nil, err
		}
		econd, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Then); err != nil {
			return nil, err
		}
		eblk, err := p.block()
		if err != nil {
			return nil, err
		}
		elseifs = append(elseifs, ast.NewElseIf(eline, econd, eblk))
	}
	var elseBlk *ast.Block
	if ok, err := p.accept(token.Else); err != nil {
		return nil, err
	} else if ok {
		elseBlk, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return ast.NewIf(line, cond, then, elseifs, elseBlk), nil
}

func (p *parser) forStmt() (ast.Stmt, error) {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	firstName, err := p.expect(token.Name)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind == token.Assign {
		return p.numericFor(line, firstName.Value)
	}
	names := []string{firstName.Value}
	for p.tok.Kind == token.Comma {
		if err := p.next(); err != nil {
			return nil, err
		}
		n, err := p.expect(token.Name)
		if err != nil {
			return nil, err
		}
		names = append(names, n.Value)
	}
	if _, err := p.expect(token.In); err != nil {
		return nil, err
	}
	exprs, err := p.exprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Do); err != nil {
		return nil, err
	}
	blk, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return ast.NewGenericFor(line, names, exprs, blk), nil
}

func (p *parser) numericFor(line token.Position, name string) (ast.Stmt, error) {
	if err := p.next(); err != nil { // consume '='
		return nil, err
	}
	start, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}
	limit, err := p.expr()
	if err != nil {
		return nil, err
	}
	var step ast.Expr
	if ok, err := p.accept(token.Comma); err != nil {
		return nil, err
	} else if ok {
		step, err = p.expr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Do); err != nil {
		return nil, err
	}
	blk, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return ast.NewNumericFor(line, name, start, limit, step, blk), nil
}

// funcname := Name ('.' Name)* (':' Name)?
func (p *parser) functionStmt() (ast.Stmt, error) {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	first, err := p.expect(token.Name)
	if err != nil {
		return nil, err
	}
	parts := []string{first.Value}
	colon := false
	for p.tok.Kind == token.Dot {
		if err := p.next(); err != nil {
			return nil, err
		}
		n, err := p.expect(token.Name)
		if err != nil {
			return nil, err
		}
		parts = append(parts, n.Value)
	}
	if p.tok.Kind == token.Colon {
		if err := p.next(); err != nil {
			return nil, err
		}
		n, err := p.expect(token.Name)
		if err != nil {
			return nil, err
		}
		parts = append(parts, n.Value)
		colon = true
	}
	fname := ast.NewFunctionName(line, parts, colon)
	body, err := p.functionBody(colon)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDecl(line, fname, body, false), nil
}

func (p *parser) localStmt() (ast.Stmt, error) {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	if ok, err := p.accept(token.Function); err != nil {
		return nil, err
	} else if ok {
		n, err := p.expect(token.Name)
		if err != nil {
			return nil, err
		}
		fname := ast.NewFunctionName(line, []string{n.Value}, false)
		body, err := p.functionBody(false)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDecl(line, fname, body, true), nil
	}

	first, err := p.expect(token.Name)
	if err != nil {
		return nil, err
	}
	names := []string{first.Value}
	for p.tok.Kind == token.Comma {
		if err := p.next(); err != nil {
			return nil, err
		}
		n, err := p.expect(token.Name)
		if err != nil {
			return nil, err
		}
		names = append(names, n.Value)
	}
	var rhs []ast.Expr
	if ok, err := p.accept(token.Assign); err != nil {
		return nil, err
	} else if ok {
		rhs, err = p.exprList()
		if err != nil {
			return nil, err
		}
	}
	lhs := make([]*ast.Variable, len(names))
	for i, n := range names {
		lhs[i] = ast.NewVariable(line, nil, ast.NewName(line, n), "dict")
	}
	return ast.NewAssignment(line, lhs, rhs, true), nil
}

// functionBody := '(' parlist? ')' block 'end'
// When colon is true, the parser prepends an implicit "self" parameter,
// matching Lua's desugaring of method-form function declarations.
func (p *parser) functionBody(colon bool) (*ast.FunctionBody, error) {
	line := p.tok.Line
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []string
	if colon {
		params = append(params, "self")
	}
	if p.tok.Kind != token.RParen {
		for {
			n, err := p.expect(token.Name)
			if err != nil {
				return nil, err
			}
			params = append(params, n.Value)
			if ok, err := p.accept(token.Comma); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	blk, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return ast.NewFunctionBody(line, params, blk), nil
}

// exprOrAssignStmt parses `varlist '=' explist` or a bare `functioncall`.
func (p *parser) exprOrAssignStmt(line token.Position) (ast.Stmt, error) {
	first, err := p.suffixedExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind == token.Assign || p.tok.Kind == token.Comma {
		lhs := []*ast.Variable{}
		v, ok := first.(*ast.Variable)
		if !ok {
			return nil, p.errorf("cannot assign to this expression")
		}
		lhs = append(lhs, v)
		for p.tok.Kind == token.Comma {
			if err := p.next(); err != nil {
				return nil, err
			}
			next, err := p.suffixedExpr()
			if err != nil {
				return nil, err
			}
			nv, ok := next.(*ast.Variable)
			if !ok {
				return nil, p.errorf("cannot assign to this expression")
			}
			lhs = append(lhs, nv)
		}
		if _, err := p.expect(token.Assign); err != nil {
			return nil, err
		}
		rhs, err := p.exprList()
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(line, lhs, rhs, false), nil
	}
	call, ok := first.(*ast.FunctionCall)
	if !ok {
		return nil, p.errorf("syntax error (expected statement)")
	}
	return ast.NewExprStmt(line, call), nil
}

func (p *parser) exprList() ([]ast.Expr, error) {
	first, err := p.expr()
	if err != nil {
		return nil, err
	}
	exprs := []ast.Expr{first}
	for p.tok.Kind == token.Comma {
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// Expression parsing follows this precedence cascade:
//
//	expr      := orExpr
//	orExpr    := andExpr ('or' andExpr)*
//	andExpr   := relExpr ('and' relExpr)*
//	relExpr   := concatExpr (relop concatExpr)*
//	concatExpr:= addExpr ('..' concatExpr)?        -- right-associative
//	addExpr   := mulExpr (('+' | '-') mulExpr)*
//	mulExpr   := unaryExpr (('*' | '/' | '%') unaryExpr)*
//	unaryExpr := ('not' | '#' | '-') unaryExpr | powExpr
//	powExpr   := atom ('^' unaryExpr)?             -- right-associative
//
// powExpr binds tighter than unary on its left operand but accepts a unary
// expression on its right, matching Lua's `-2^2 == -4` and `2^-2 == 0.25`
// associativity quirks (the latter is moot here since esl has no floats).
func (p *parser) expr() (ast.Expr, error) {
	return p.orExpr()
}

func (p *parser) orExpr() (ast.Expr, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == token.Or {
		line := p.tok.Line
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewLogical(line, ast.LogicalOr, left, right)
	}
	return left, nil
}

func (p *parser) andExpr() (ast.Expr, error) {
	left, err := p.relExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == token.And {
		line := p.tok.Line
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.relExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewLogical(line, ast.LogicalAnd, left, right)
	}
	return left, nil
}

func relOpFor(k token.Kind) (ast.RelOp, bool) {
	switch k {
	case token.Eq:
		return ast.RelEq, true
	case token.Ne:
		return ast.RelNe, true
	case token.Lt:
		return ast.RelLt, true
	case token.Gt:
		return ast.RelGt, true
	case token.Le:
		return ast.RelLe, true
	case token.Ge:
		return ast.RelGe, true
	default:
		return 0, false
	}
}

func (p *parser) relExpr() (ast.Expr, error) {
	left, err := p.concatExpr()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := relOpFor(p.tok.Kind)
		if !ok {
			return left, nil
		}
		line := p.tok.Line
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.concatExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewRelational(line, op, left, right)
	}
}

// concatExpr is right-associative: `a .. b .. c` parses as `a .. (b .. c)`.
func (p *parser) concatExpr() (ast.Expr, error) {
	left, err := p.addExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != token.Concat {
		return left, nil
	}
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	right, err := p.concatExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewAppend(line, left, right), nil
}

func (p *parser) addExpr() (ast.Expr, error) {
	left, err := p.mulExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == token.Plus || p.tok.Kind == token.Minus {
		op := ast.ArithAdd
		if p.tok.Kind == token.Minus {
			op = ast.ArithSub
		}
		line := p.tok.Line
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.mulExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewArithmetic(line, op, left, right)
	}
	return left, nil
}

func (p *parser) mulExpr() (ast.Expr, error) {
	left, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.ArithOp
		switch p.tok.Kind {
		case token.Star:
			op = ast.ArithMul
		case token.Slash:
			op = ast.ArithDiv
		case token.Percent:
			op = ast.ArithMod
		default:
			return left, nil
		}
		line := p.tok.Line
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewArithmetic(line, op, left, right)
	}
}

func (p *parser) unaryExpr() (ast.Expr, error) {
	var op ast.UnaryOp
	switch p.tok.Kind {
	case token.Not:
		op = ast.UnaryNot
	case token.Hash:
		op = ast.UnaryLen
	case token.Minus:
		op = ast.UnaryNeg
	default:
		return p.powExpr()
	}
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	operand, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(line, op, operand), nil
}

// powExpr is right-associative and binds tighter than unary operators.
func (p *parser) powExpr() (ast.Expr, error) {
	left, err := p.suffixedOrAtom()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != token.Caret {
		return left, nil
	}
	line := p.tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	right, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewArithmetic(line, ast.ArithPow, left, right), nil
}

func (p *parser) suffixedOrAtom() (ast.Expr, error) {
	switch p.tok.Kind {
	case token.Nil, token.True, token.False, token.Int, token.String:
		tok := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}
		return ast.NewConstant(tok.Line, tok.Kind, tok.Value), nil
	case token.Function:
		line := p.tok.Line
		if err := p.next(); err != nil {
			return nil, err
		}
		body, err := p.functionBody(false)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionExpr(line, body), nil
	case token.LBrace:
		return p.tableConstructor()
	default:
		return p.suffixedExpr()
	}
}

// suffixedExpr parses a primary expression (a name or a parenthesized
// expression) followed by any run of '.'/'['/':'/'(' suffixes, producing
// the innermost *ast.Variable or *ast.FunctionCall.
func (p *parser) suffixedExpr() (ast.Expr, error) {
	e, err := p.primaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		line := p.tok.Line
		switch p.tok.Kind {
		case token.Dot:
			if err := p.next(); err != nil {
				return nil, err
			}
			n, err := p.expect(token.Name)
			if err != nil {
				return nil, err
			}
			e = ast.NewVariable(line, e, ast.NewName(n.Line, n.Value), "attr")
		case token.LBracket:
			if err := p.next(); err != nil {
				return nil, err
			}
			key, err := p.expr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			e = ast.NewVariable(line, e, key, "dict")
		case token.Colon:
			if err := p.next(); err != nil {
				return nil, err
			}
			n, err := p.expect(token.Name)
			if err != nil {
				return nil, err
			}
			args, err := p.callArgs()
			if err != nil {
				return nil, err
			}
			e = ast.NewFunctionCall(line, e, n.Value, args, true)
		case token.LParen, token.String, token.LBrace:
			args, err := p.callArgs()
			if err != nil {
				return nil, err
			}
			e = ast.NewFunctionCall(line, e, "", args, false)
		default:
			return e, nil
		}
	}
}

func (p *parser) primaryExpr() (ast.Expr, error) {
	switch p.tok.Kind {
	case token.Name:
		tok := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}
		return ast.NewVariable(tok.Line, nil, ast.NewName(tok.Line, tok.Value), "dict"), nil
	case token.LParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errorf("unexpected %v", p.tok)
	}
}

// callArgs parses '(' explist? ')', a single string literal, or a single
// table constructor — all three are valid call argument forms in Lua.
func (p *parser) callArgs() ([]ast.Expr, error) {
	switch p.tok.Kind {
	case token.String:
		tok := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}
		return []ast.Expr{ast.NewConstant(tok.Line, tok.Kind, tok.Value)}, nil
	case token.LBrace:
		t, err := p.tableConstructor()
		if err != nil {
			return nil, err
		}
		return []ast.Expr{t}, nil
	case token.LParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Kind == token.RParen {
			if err := p.next(); err != nil {
				return nil, err
			}
			return nil, nil
		}
		args, err := p.exprList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return args, nil
	default:
		return nil, p.errorf("function arguments expected")
	}
}

// tableConstructor parses `{ (field (',' | ';'))* '}'`.
// A field is `[expr] = expr`, `name = expr`, or a bare `expr` that receives
// the next increasing array index.
func (p *parser) tableConstructor() (ast.Expr, error) {
	line := p.tok.Line
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var fields []*ast.Field
	for p.tok.Kind != token.RBrace {
		fline := p.tok.Line
		var f *ast.Field
		switch {
		case p.tok.Kind == token.LBracket:
			if err := p.next(); err != nil {
				return nil, err
			}
			key, err := p.expr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Assign); err != nil {
				return nil, err
			}
			val, err := p.expr()
			if err != nil {
				return nil, err
			}
			f = ast.NewField(fline, key, val)
		case p.tok.Kind == token.Name && p.peekIsAssign():
			n := p.tok
			if err := p.next(); err != nil {
				return nil, err
			}
			if err := p.next(); err != nil { // consume '='
				return nil, err
			}
			val, err := p.expr()
			if err != nil {
				return nil, err
			}
			f = ast.NewField(fline, ast.NewConstant(n.Line, token.String, n.Value), val)
		default:
			val, err := p.expr()
			if err != nil {
				return nil, err
			}
			f = ast.NewField(fline, nil, val)
		}
		fields = append(fields, f)
		if p.tok.Kind == token.Comma || p.tok.Kind == token.Semi {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return ast.NewTableExpr(line, fields), nil
}

// peekIsAssign reports whether the token after the current Name is '='.
// The parser buffers only one token of lookahead, so this peeks the scanner
// directly without committing to the read.
func (p *parser) peekIsAssign() bool {
	save := *p.s
	tok, err := p.s.Scan()
	*p.s = save
	return err == nil && tok.Kind == token.Assign
}
