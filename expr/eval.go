package expr

import "fmt"

// Eval computes the integer value of a parsed expression. Division truncates
// toward zero. Overflow wraps as two's-complement int64.
func Eval(e Expr) (int64, error) {
	switch n := e.(type) {
	case *NumberExpr:
		return n.Value, nil

	case *BinaryExpr:
		return evalBinary(n)

	case nil:
		return 0, &Error{Kind: KindMalformed, Msg: "missing operand", Pos: -1}

	default:
		return 0, fmt.Errorf("unknown expression type %T", e)
	}
}

func evalBinary(n *BinaryExpr) (int64, error) {
	left, err := Eval(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := Eval(n.Right)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case OpAdd:
		return left + right, nil
	case OpSub:
		return left - right, nil
	case OpMul:
		return left * right, nil
	case OpDiv:
		if right == 0 {
			return 0, &Error{
				Kind: KindDivisionByZero,
				Msg:  fmt.Sprintf("division by zero in %s", n),
				Pos:  -1,
			}
		}
		return left / right, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %s", n.Op)
	}
}

// Evaluate tokenizes, parses and evaluates expression.
func Evaluate(expression string) (int64, error) {
	ast, err := Parse(expression)
	if err != nil {
		return 0, err
	}
	return Eval(ast)
}
