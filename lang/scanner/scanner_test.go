package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrewgrz/gears-lang/lang/token"
)

func scanAll(t *testing.T, src string) []Tok {
	t.Helper()
	var errs []string
	s := New([]byte(src), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	var toks []Tok
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	require.Empty(t, errs, "unexpected lex errors: %v", errs)
	return toks
}

func kinds(toks []Tok) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "( ) { } [ ] , : ; = == != < <= > >= + - * / -> |")
	require.Equal(t, []token.Token{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACK, token.RBRACK, token.COMMA, token.COLON, token.SEMI,
		token.EQ, token.EQL, token.NEQ, token.LT, token.LE, token.GT, token.GE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.ARROW, token.PIPE,
		token.EOF,
	}, kinds(toks))
}

func TestScanKeywordsAndTypes(t *testing.T) {
	toks := scanAll(t, "def let if else while for in to true false none int bool str list")
	require.Equal(t, []token.Token{
		token.DEF, token.LET, token.IF, token.ELSE, token.WHILE, token.FOR,
		token.IN, token.TO, token.TRUE, token.FALSE, token.NONE_KW,
		token.INT_TYPE, token.BOOL_TYPE, token.STR_TYPE, token.LIST_TYPE,
		token.EOF,
	}, kinds(toks))
}

func TestScanIdentAndInt(t *testing.T) {
	toks := scanAll(t, "count 1234")
	require.Equal(t, token.IDENT, toks[0].Kind)
	require.Equal(t, "count", toks[0].Lit)
	require.Equal(t, token.INT, toks[1].Kind)
	require.EqualValues(t, 1234, toks[1].IntVal)
}

func TestScanString(t *testing.T) {
	toks := scanAll(t, `"hello\nworld"`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hello\nworld", toks[0].StrVal)
}

func TestScanLineComment(t *testing.T) {
	toks := scanAll(t, "1 # a trailing comment\n2")
	require.Equal(t, []token.Token{token.INT, token.INT, token.EOF}, kinds(toks))
	require.EqualValues(t, 1, toks[0].IntVal)
	require.EqualValues(t, 2, toks[1].IntVal)
}

func TestScanLineAndColumnTracking(t *testing.T) {
	toks := scanAll(t, "a\nbb")
	line1, col1 := toks[0].Pos.LineCol()
	require.Equal(t, 1, line1)
	require.Equal(t, 1, col1)
	line2, col2 := toks[1].Pos.LineCol()
	require.Equal(t, 2, line2)
	require.Equal(t, 1, col2)
}

func TestScanUnterminatedString(t *testing.T) {
	var errs []string
	s := New([]byte(`"unterminated`), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	s.Scan()
	require.NotEmpty(t, errs)
}

func TestScanIllegalCharacter(t *testing.T) {
	var errs []string
	s := New([]byte("@"), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	tok := s.Scan()
	require.Equal(t, token.ILLEGAL, tok.Kind)
	require.NotEmpty(t, errs)
}
