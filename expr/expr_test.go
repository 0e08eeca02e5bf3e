package expr

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// evalExpr is a parse-then-eval integration helper.
func evalExpr(t *testing.T, input string) int64 {
	t.Helper()
	ast, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", input, err)
	}
	result, err := Eval(ast)
	if err != nil {
		t.Fatalf("Eval(%q) unexpected error: %v", input, err)
	}
	return result
}

// assertKind asserts err is an *Error of the given kind matching the sentinel.
func assertKind(t *testing.T, label string, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected %s error, got nil", label, want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("%s: got kind %q (%v), want %q", label, got, err, want)
	}
	sentinel := ErrMalformedExpression
	if want == KindDivisionByZero {
		sentinel = ErrDivisionByZero
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("%s: errors.Is(%v, %v) = false", label, err, sentinel)
	}
}

func tokenKinds(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

// ---------------------------------------------------------------------------
// 1. Tokenizer tests
// ---------------------------------------------------------------------------

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"2+3*4", []string{"2", "+", "3", "*", "4"}},
		{"123", []string{"123"}},
		{"12 + 34", []string{"12", "+", "34"}},
		{"(1+2)", []string{"(", "1", "+", "2", ")"}},
		{
			"((9-5)-(5+3))*(8-2)",
			[]string{"(", "(", "9", "-", "5", ")", "-", "(", "5", "+", "3", ")", ")", "*", "(", "8", "-", "2", ")"},
		},
		// Split does not validate.
		{"a+b", []string{"a", "+", "b"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Split(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLex_Operators(t *testing.T) {
	tests := []struct {
		input string
		kinds []TokenKind
	}{
		{"+", []TokenKind{TokenPlus, TokenEOF}},
		{"-", []TokenKind{TokenMinus, TokenEOF}},
		{"*", []TokenKind{TokenStar, TokenEOF}},
		{"/", []TokenKind{TokenSlash, TokenEOF}},
		{"(", []TokenKind{TokenLParen, TokenEOF}},
		{")", []TokenKind{TokenRParen, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.input, err)
			}
			if got := tokenKinds(tokens); !reflect.DeepEqual(got, tt.kinds) {
				t.Fatalf("Lex(%q) kinds = %v, want %v", tt.input, got, tt.kinds)
			}
		})
	}
}

func TestLex_MultiDigitNumbers(t *testing.T) {
	tokens, err := Lex("12+345")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	want := []Token{
		{Kind: TokenNumber, Value: "12", Pos: 0},
		{Kind: TokenPlus, Value: "+", Pos: 2},
		{Kind: TokenNumber, Value: "345", Pos: 3},
		{Kind: TokenEOF, Pos: 6},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("got %+v, want %+v", tokens, want)
	}
}

func TestLex_Whitespace(t *testing.T) {
	tokens, err := Lex("  7 *\t(1 )\n")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	want := []TokenKind{TokenNumber, TokenStar, TokenLParen, TokenNumber, TokenRParen, TokenEOF}
	if got := tokenKinds(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if tokens[0].Pos != 2 || tokens[2].Pos != 6 {
		t.Errorf("unexpected positions: %+v", tokens)
	}
}

func TestLex_EmptyInput(t *testing.T) {
	tokens, err := Lex("")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != TokenEOF {
		t.Fatalf("expected only EOF, got %+v", tokens)
	}
}

func TestLex_UnexpectedCharacter(t *testing.T) {
	for _, input := range []string{"1 $ 2", "x+1", "2^3", "1.5"} {
		t.Run(input, func(t *testing.T) {
			_, err := Lex(input)
			assertKind(t, input, err, KindMalformed)
			if !strings.Contains(err.Error(), "unexpected character") {
				t.Errorf("error %q should mention the character", err)
			}
		})
	}
}

func TestLex_UnexpectedCharacterPosition(t *testing.T) {
	_, err := Lex("1 $ 2")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Pos != 2 {
		t.Errorf("got position %d, want 2", e.Pos)
	}
}

func TestLex_TokenKindString(t *testing.T) {
	if TokenStar.String() != "*" {
		t.Errorf("got %q", TokenStar.String())
	}
	if TokenKind(99).String() != "token(99)" {
		t.Errorf("got %q", TokenKind(99).String())
	}
}

// ---------------------------------------------------------------------------
// 2. Parser tests
// ---------------------------------------------------------------------------

func TestParse_Number(t *testing.T) {
	ast, err := Parse("42")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	num, ok := ast.(*NumberExpr)
	if !ok {
		t.Fatalf("expected *NumberExpr, got %T", ast)
	}
	if num.Value != 42 {
		t.Errorf("got %d, want 42", num.Value)
	}
}

func TestParse_PrecedenceMulOverAdd(t *testing.T) {
	ast, err := Parse("2+3*4")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	bin, ok := ast.(*BinaryExpr)
	if !ok || bin.Op != OpAdd {
		t.Fatalf("expected top-level +, got %s", ast)
	}
	right, ok := bin.Right.(*BinaryExpr)
	if !ok || right.Op != OpMul {
		t.Fatalf("expected * on the right, got %s", bin.Right)
	}
}

func TestParse_LeftAssociative(t *testing.T) {
	ast, err := Parse("8-4-2")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	bin := ast.(*BinaryExpr)
	left, ok := bin.Left.(*BinaryExpr)
	if !ok || left.Op != OpSub {
		t.Fatalf("expected (8-4)-2, got %s", Outline(ast))
	}
	if _, ok := bin.Right.(*NumberExpr); !ok {
		t.Fatalf("expected number on the right, got %T", bin.Right)
	}
}

func TestParse_Grouping(t *testing.T) {
	ast, err := Parse("(2+3)*4")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	bin := ast.(*BinaryExpr)
	if bin.Op != OpMul {
		t.Fatalf("expected top-level *, got %s", bin.Op)
	}
	if left, ok := bin.Left.(*BinaryExpr); !ok || left.Op != OpAdd {
		t.Fatalf("expected grouped + on the left, got %s", bin.Left)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		pos   int
	}{
		{"", "empty expression", 0},
		{"   ", "empty expression", 3},
		{"(1+2", "unclosed (", 0},
		{"((1)", "unclosed (", 0},
		{"1+2)", "unmatched )", 3},
		{"1+", "missing operand at end of input", 2},
		{"+1", "missing operand before +", 0},
		{"1+*2", "missing operand before *", 2},
		{"2 3", "unexpected number 3", 2},
		{"()", "missing operand before )", 1},
		{"(1+)", "missing operand before )", 3},
		{"2(3)", "unexpected (", 1},
		{"99999999999999999999", "invalid number", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			assertKind(t, tt.input, err, KindMalformed)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if !strings.Contains(e.Msg, tt.msg) {
				t.Errorf("got message %q, want it to contain %q", e.Msg, tt.msg)
			}
			if e.Pos != tt.pos {
				t.Errorf("got position %d, want %d", e.Pos, tt.pos)
			}
		})
	}
}

func TestParseTokens_WithoutEOF(t *testing.T) {
	tokens := []Token{
		{Kind: TokenNumber, Value: "6", Pos: 0},
		{Kind: TokenSlash, Value: "/", Pos: 1},
		{Kind: TokenNumber, Value: "2", Pos: 2},
	}
	ast, err := ParseTokens(tokens)
	if err != nil {
		t.Fatalf("ParseTokens error: %v", err)
	}
	got, err := Eval(ast)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestParseTokens_Empty(t *testing.T) {
	_, err := ParseTokens(nil)
	assertKind(t, "nil tokens", err, KindMalformed)
}

func TestValidateSyntax(t *testing.T) {
	if err := ValidateSyntax("1+(2*3)"); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	if err := ValidateSyntax("1+(2*3"); err == nil {
		t.Error("expected error for unclosed paren")
	}
	// Division by zero is an evaluation error, not a syntax error.
	if err := ValidateSyntax("1/0"); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// 3. Evaluator tests
// ---------------------------------------------------------------------------

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"((9-5)-(5+3))*(8-2)", -24},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/3", 3},
		{"0/5", 0},
		{"42", 42},
		{"1-2-3", -4},
		{"100/10/5", 2},
		{"7-3+2", 6},
		{"2*3+4*5", 26},
		{"2*(3+4)*5", 70},
		{"(0-7)/2", -3},
		{"((((1))))", 1},
		{" 2 + 3 * 4 ", 14},
		{"1+2*3-4/2", 5},
		{"9223372036854775807+1", math.MinInt64},
		{"(9223372036854775807+1)/(0-1)", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Evaluate(tt.input)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Evaluate(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, input := range []string{"5/0", "8/(3-3)", "1+2/(4*0)"} {
		t.Run(input, func(t *testing.T) {
			_, err := Evaluate(input)
			assertKind(t, input, err, KindDivisionByZero)
		})
	}
}

func TestEvaluate_Malformed(t *testing.T) {
	for _, input := range []string{"(1+2", "1+", "", "abc", "1++2"} {
		t.Run(input, func(t *testing.T) {
			_, err := Evaluate(input)
			assertKind(t, input, err, KindMalformed)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	const input = "((9-5)-(5+3))*(8-2)"
	first := evalExpr(t, input)
	for i := 0; i < 5; i++ {
		if got := evalExpr(t, input); got != first {
			t.Fatalf("run %d: got %d, want %d", i, got, first)
		}
	}
}

func TestEval_NilOperand(t *testing.T) {
	_, err := Eval(&BinaryExpr{Left: &NumberExpr{Value: 1}, Op: OpAdd})
	assertKind(t, "nil right", err, KindMalformed)
}

func TestEval_TruncatesTowardZero(t *testing.T) {
	ast := &BinaryExpr{Left: &NumberExpr{Value: -7}, Op: OpDiv, Right: &NumberExpr{Value: 2}}
	got, err := Eval(ast)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != -3 {
		t.Errorf("got %d, want -3", got)
	}
}

// ---------------------------------------------------------------------------
// 4. Rendering tests
// ---------------------------------------------------------------------------

func TestAST_StringRepresentations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "2+3*4"},
		{"(2+3)*4", "(2+3)*4"},
		{"1-(2-3)", "1-(2-3)"},
		{"(1-2)-3", "1-2-3"},
		{"(2*3)+4", "2*3+4"},
		{"2*(3/4)", "2*(3/4)"},
		{"((9-5)-(5+3))*(8-2)", "(9-5-(5+3))*(8-2)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ast, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if got := ast.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAST_StringWithMissingOperand(t *testing.T) {
	tests := []struct {
		ast  Expr
		want string
	}{
		{&BinaryExpr{Left: &NumberExpr{Value: 1}, Op: OpAdd}, "1+<nil>"},
		{&BinaryExpr{Op: OpMul, Right: &NumberExpr{Value: 2}}, "<nil>*2"},
		{&BinaryExpr{Op: OpSub}, "<nil>-<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ast.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutline(t *testing.T) {
	ast, err := Parse("1+2*3")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := "+\n  1\n  *\n    2\n    3\n"
	if got := Outline(ast); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestOpString(t *testing.T) {
	if OpDiv.String() != "/" {
		t.Errorf("got %q", OpDiv.String())
	}
	if Op(9).String() != "op(9)" {
		t.Errorf("got %q", Op(9).String())
	}
}

// randomTree builds a random expression of non-negative literals.
func randomTree(r *rand.Rand, depth int) Expr {
	if depth == 0 || r.Intn(depth+1) == 0 {
		return &NumberExpr{Value: int64(r.Intn(20))}
	}
	return &BinaryExpr{
		Left:  randomTree(r, depth-1),
		Op:    Op(r.Intn(4)),
		Right: randomTree(r, depth-1),
	}
}

func TestStringRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		tree := randomTree(r, 5)
		src := tree.String()

		want, wantErr := Eval(tree)
		got, gotErr := Evaluate(src)

		if KindOf(wantErr) != KindOf(gotErr) {
			t.Fatalf("%s: tree error %v, source error %v", src, wantErr, gotErr)
		}
		if wantErr == nil && got != want {
			t.Fatalf("%s: tree = %d, source = %d", src, want, got)
		}
	}
}
