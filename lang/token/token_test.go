package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		lit  string
		want Token
	}{
		{"def", DEF},
		{"let", LET},
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"for", FOR},
		{"in", IN},
		{"to", TO},
		{"true", TRUE},
		{"false", FALSE},
		{"none", NONE_KW},
		{"int", INT_TYPE},
		{"bool", BOOL_TYPE},
		{"str", STR_TYPE},
		{"list", LIST_TYPE},
		{"x", IDENT},
		{"result", IDENT},
	}
	for _, c := range cases {
		t.Run(c.lit, func(t *testing.T) {
			require.Equal(t, c.want, LookupIdent(c.lit))
		})
	}
}

func TestIsTypeName(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		want := tok == INT_TYPE || tok == BOOL_TYPE || tok == STR_TYPE || tok == LIST_TYPE || tok == NONE_TYPE
		require.Equal(t, want, IsTypeName(tok), tok.String())
	}
}
