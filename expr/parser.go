package expr

import "strconv"

// Parse parses an expression string into an AST.
func Parse(input string) (Expr, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ValidateSyntax reports whether expression parses, without evaluating it.
// Division by zero is not a syntax error.
func ValidateSyntax(expression string) error {
	_, err := Parse(expression)
	return err
}

// ParseTokens builds an AST from a token sequence produced by Lex, using the
// shunting-yard algorithm: one stack of operands and one of pending operators
// and open parentheses. A missing trailing TokenEOF is tolerated.
func ParseTokens(tokens []Token) (Expr, error) {
	p := &parser{expectOperand: true}
	for _, tok := range tokens {
		if tok.Kind == TokenEOF {
			break
		}
		if err := p.step(tok); err != nil {
			return nil, err
		}
	}
	return p.finish(endPos(tokens))
}

type parser struct {
	operands  []Expr
	operators []Token

	// expectOperand is true when the next token must start an operand:
	// at the beginning, after an operator and after "(".
	expectOperand bool
	seen          int
}

func (p *parser) step(tok Token) error {
	p.seen++
	switch {
	case tok.Kind == TokenNumber:
		if !p.expectOperand {
			return malformedf(tok.Pos, "unexpected number %s", tok.Value)
		}
		val, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return malformedf(tok.Pos, "invalid number %q", tok.Value)
		}
		p.operands = append(p.operands, &NumberExpr{Value: val})
		p.expectOperand = false

	case tok.Kind.IsOperator():
		if p.expectOperand {
			return malformedf(tok.Pos, "missing operand before %s", tok.Kind)
		}
		op, _ := opFromToken(tok.Kind)
		for len(p.operators) > 0 {
			top := p.operators[len(p.operators)-1]
			if top.Kind == TokenLParen {
				break
			}
			topOp, _ := opFromToken(top.Kind)
			if topOp.Precedence() < op.Precedence() {
				break
			}
			if err := p.reduce(); err != nil {
				return err
			}
		}
		p.operators = append(p.operators, tok)
		p.expectOperand = true

	case tok.Kind == TokenLParen:
		if !p.expectOperand {
			return malformedf(tok.Pos, "unexpected %s", tok.Kind)
		}
		p.operators = append(p.operators, tok)

	case tok.Kind == TokenRParen:
		if p.expectOperand {
			return malformedf(tok.Pos, "missing operand before %s", tok.Kind)
		}
		for {
			if len(p.operators) == 0 {
				return malformedf(tok.Pos, "unmatched %s", tok.Kind)
			}
			if p.operators[len(p.operators)-1].Kind == TokenLParen {
				p.operators = p.operators[:len(p.operators)-1]
				break
			}
			if err := p.reduce(); err != nil {
				return err
			}
		}

	default:
		return malformedf(tok.Pos, "unexpected token %s", tok.Kind)
	}
	return nil
}

// finish drains the operator stack and returns the single remaining operand.
func (p *parser) finish(pos int) (Expr, error) {
	if p.seen == 0 {
		return nil, malformedf(pos, "empty expression")
	}
	if p.expectOperand {
		return nil, malformedf(pos, "missing operand at end of input")
	}
	for len(p.operators) > 0 {
		top := p.operators[len(p.operators)-1]
		if top.Kind == TokenLParen {
			return nil, malformedf(top.Pos, "unclosed %s", top.Kind)
		}
		if err := p.reduce(); err != nil {
			return nil, err
		}
	}
	if len(p.operands) != 1 {
		return nil, malformedf(pos, "expected a single expression, found %d", len(p.operands))
	}
	return p.operands[0], nil
}

// reduce pops one operator and two operands and pushes the combined node.
func (p *parser) reduce() error {
	top := p.operators[len(p.operators)-1]
	op, ok := opFromToken(top.Kind)
	if !ok {
		return malformedf(top.Pos, "unexpected %s", top.Kind)
	}
	if len(p.operands) < 2 {
		return malformedf(top.Pos, "missing operand for %s", top.Kind)
	}
	p.operators = p.operators[:len(p.operators)-1]

	n := len(p.operands)
	left, right := p.operands[n-2], p.operands[n-1]
	p.operands = append(p.operands[:n-2], &BinaryExpr{Left: left, Op: op, Right: right})
	return nil
}

func endPos(tokens []Token) int {
	if len(tokens) == 0 {
		return 0
	}
	last := tokens[len(tokens)-1]
	if last.Kind == TokenEOF {
		return last.Pos
	}
	return last.Pos + len(last.Value)
}
