// Package expr implements a small integer arithmetic language: a tokenizer,
// an operator-precedence parser and a tree-walking evaluator. Expressions are
// stateless and side-effect-free.
package expr

import (
	"fmt"
	"strconv"
)

// Op is a binary arithmetic operator.
type Op int

const (
	OpAdd Op = iota // +
	OpSub           // -
	OpMul           // *
	OpDiv           // /
)

var opSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opSymbols) {
		return opSymbols[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Precedence returns the binding strength of the operator. Higher binds tighter.
func (o Op) Precedence() int {
	switch o {
	case OpMul, OpDiv:
		return 2
	case OpAdd, OpSub:
		return 1
	}
	return 0
}

// opFromToken maps an operator token kind to its Op.
func opFromToken(kind TokenKind) (Op, bool) {
	switch kind {
	case TokenPlus:
		return OpAdd, true
	case TokenMinus:
		return OpSub, true
	case TokenStar:
		return OpMul, true
	case TokenSlash:
		return OpDiv, true
	}
	return 0, false
}

// Expr is the interface implemented by all AST nodes.
type Expr interface {
	expr() // marker method
	String() string
}

// NumberExpr is an integer literal.
type NumberExpr struct {
	Value int64
}

func (e *NumberExpr) expr() {}
func (e *NumberExpr) String() string {
	return strconv.FormatInt(e.Value, 10)
}

// BinaryExpr applies Op to its two operands. Left and Right are never nil in
// a tree produced by Parse.
type BinaryExpr struct {
	Left  Expr
	Op    Op
	Right Expr
}

func (e *BinaryExpr) expr() {}

// String renders the expression with the fewest parentheses that keep its
// meaning. Operators are left-associative, so a right operand of equal
// precedence is wrapped.
func (e *BinaryExpr) String() string {
	left := exprString(e.Left)
	right := exprString(e.Right)
	if l, ok := e.Left.(*BinaryExpr); ok && l.Op.Precedence() < e.Op.Precedence() {
		left = "(" + left + ")"
	}
	if r, ok := e.Right.(*BinaryExpr); ok && r.Op.Precedence() <= e.Op.Precedence() {
		right = "(" + right + ")"
	}
	return left + e.Op.String() + right
}

// exprString renders e, or "<nil>" for a missing operand.
func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
