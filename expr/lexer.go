package expr

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies the type of a lexer token.
type TokenKind int

const (
	TokenNumber TokenKind = iota // integer literal

	// Operators
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	// Delimiters
	TokenLParen // (
	TokenRParen // )

	TokenEOF
)

var tokenNames = map[TokenKind]string{
	TokenNumber: "number",
	TokenPlus:   "+",
	TokenMinus:  "-",
	TokenStar:   "*",
	TokenSlash:  "/",
	TokenLParen: "(",
	TokenRParen: ")",
	TokenEOF:    "EOF",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// IsOperator reports whether k is one of + - * /.
func (k TokenKind) IsOperator() bool {
	_, ok := opFromToken(k)
	return ok
}

// Token is a lexed token with position information.
type Token struct {
	Kind  TokenKind
	Value string // raw text of the token
	Pos   int    // byte offset in source
}

// Split breaks s immediately before and after every + - * / ( ) character.
// Digit runs stay together. Pieces are trimmed of surrounding whitespace and
// empty pieces are dropped. Nothing is validated: use Lex for that.
func Split(s string) []string {
	var parts []string
	flush := func(piece string) {
		if piece = strings.TrimSpace(piece); piece != "" {
			parts = append(parts, piece)
		}
	}
	start := 0
	for i := 0; i < len(s); i++ {
		if isDelimiter(s[i]) {
			flush(s[start:i])
			parts = append(parts, s[i:i+1])
			start = i + 1
		}
	}
	flush(s[start:])
	return parts
}

// Lexer tokenizes expression strings.
type Lexer struct {
	src    string
	pos    int
	tokens []Token
}

// Lex tokenizes the input string and returns all tokens, terminated by a
// TokenEOF. Whitespace between tokens is ignored; any other character that is
// not a digit, operator or parenthesis is rejected.
func Lex(src string) ([]Token, error) {
	l := &Lexer{src: src}
	if err := l.lexAll(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *Lexer) lexAll() error {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			l.tokens = append(l.tokens, Token{Kind: TokenEOF, Pos: l.pos})
			return nil
		}

		ch, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		if l.tryEmitSingleCharToken(ch) {
			continue
		}

		if !isDigit(ch) {
			return malformedf(l.pos, "unexpected character %q", string(ch))
		}
		l.lexNumber()
	}
}

func (l *Lexer) tryEmitSingleCharToken(ch rune) bool {
	switch ch {
	case '+':
		l.emit1(TokenPlus)
	case '-':
		l.emit1(TokenMinus)
	case '*':
		l.emit1(TokenStar)
	case '/':
		l.emit1(TokenSlash)
	case '(':
		l.emit1(TokenLParen)
	case ')':
		l.emit1(TokenRParen)
	default:
		return false
	}
	return true
}

func (l *Lexer) emit1(kind TokenKind) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: l.src[l.pos : l.pos+1], Pos: l.pos})
	l.pos++
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(ch) {
			break
		}
		l.pos += size
	}
}

func (l *Lexer) lexNumber() {
	start := l.pos
	for l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
		l.pos++
	}
	l.tokens = append(l.tokens, Token{Kind: TokenNumber, Value: l.src[start:l.pos], Pos: start})
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isDelimiter(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '(', ')':
		return true
	}
	return false
}
