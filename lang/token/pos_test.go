package token

import (
	"fmt"
	"testing"
)

func TestMakePosLineCol(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{1, 80},
		{42, 1},
		{1000, 7},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d:%d", c.line, c.col), func(t *testing.T) {
			p := MakePos(c.line, c.col)
			gotLine, gotCol := p.LineCol()
			if gotLine != c.line || gotCol != c.col {
				t.Errorf("want %d:%d, got %d:%d", c.line, c.col, gotLine, gotCol)
			}
			if p.Unknown() {
				t.Errorf("MakePos(%d, %d) reported Unknown", c.line, c.col)
			}
		})
	}
}

func TestPosUnknown(t *testing.T) {
	var zero Pos
	if !zero.Unknown() {
		t.Error("zero Pos should be Unknown")
	}
}

func TestPosString(t *testing.T) {
	p := MakePos(3, 14)
	if got, want := p.String(), "3:14"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
