/*
Copyright (C) 2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import (
	"io"
	"testing"
)

// countingSource hands out lines and remembers how many were taken
type countingSource struct {
	lines []string
	taken int
}

func (s *countingSource) ReadLine() (string, error) {
	if s.taken >= len(s.lines) {
		return "", io.EOF
	}
	s.taken++
	return s.lines[s.taken-1], nil
}

func readAll(t *testing.T, in *Interp, code string) []Scmer {
	t.Helper()
	p := NewStringPort("test", code)
	var result []Scmer
	for {
		x, err := in.Read(p)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", code, err)
		}
		if IsEOF(x) {
			return result
		}
		result = append(result, x)
	}
}

func TestReadAtoms(t *testing.T) {
	in := NewInterp(nil)
	cases := []struct {
		code string
		want string
	}{
		{"42", "42"},
		{"-7", "-7"},
		{"+5", "5"},
		{".5", "0.5"},
		{"1e3", "1000"},
		{"2.5", "2.5"},
		{"#t", "#t"},
		{"#f", "#f"},
		{`"a b"`, `"a b"`},
		{`"line\nbreak"`, `"line\nbreak"`},
		{`"quote \" inside"`, `"quote \" inside"`},
		{`"back\\slash"`, `"back\\slash"`},
		{"abc", "abc"},
		{"set!", "set!"},
		{"inf", "inf"},
		{"nan", "nan"},
		{"-", "-"},
		{"...", "..."},
		{"1_000", "1_000"},
		{"0x10", "0x10"},
		{"1e400", "+Inf"},
		{"-1e400", "-Inf"},
		{"'a", "(quote a)"},
		{"`a", "(quasiquote a)"},
		{",a", "(unquote a)"},
		{",@a", "(unquote-splicing a)"},
		{"(a (b c) ())", "(a (b c) ())"},
	}
	for _, c := range cases {
		xs := readAll(t, in, c.code)
		if len(xs) != 1 {
			t.Fatalf("%q: expected one expression, got %d", c.code, len(xs))
		}
		if got := SerializeToString(xs[0]); got != c.want {
			t.Fatalf("%q: expected %s, got %s", c.code, c.want, got)
		}
	}
}

func TestReadSymbolsAreInterned(t *testing.T) {
	in := NewInterp(nil)
	xs := readAll(t, in, "foo (foo)")
	if xs[0].(*Symbol) != xs[1].([]Scmer)[0].(*Symbol) {
		t.Fatalf("the same name read twice gives different symbols")
	}
	if xs[0].(*Symbol) != in.Symbols.Intern("foo") {
		t.Fatalf("reader does not use the interpreter's symbol table")
	}
}

func TestReadRoundTrip(t *testing.T) {
	in := NewInterp(nil)
	for _, code := range []string{"1", "-2.75", "1e+100", "#t", "#f", `"tab\there"`, `"ünïcödé"`, "sym", "a->b", "(1 (2 \"x\") y)"} {
		first := readAll(t, in, code)[0]
		second := readAll(t, in, SerializeToString(first))[0]
		if !Equal(first, second) {
			t.Fatalf("%q: printing and reading again gives %s", code, SerializeToString(second))
		}
	}
}

func TestReadErrors(t *testing.T) {
	in := NewInterp(nil)
	for _, code := range []string{"(1 2", ")", "'", `"open string`, "(a (b)"} {
		p := NewStringPort("test", code)
		_, err := in.Read(p)
		if errorKind(err) != "SyntaxError" {
			t.Fatalf("%q: expected SyntaxError, got %v", code, err)
		}
	}
}

func TestReadIsLineLazy(t *testing.T) {
	in := NewInterp(nil)
	src := &countingSource{lines: []string{"(+ 1", "2) (car", "'(x)) 7", "never read"}}
	p := NewLinePort("lazy", src)

	x, err := in.Read(p)
	if err != nil || SerializeToString(x) != "(+ 1 2)" {
		t.Fatalf("first read: %v %v", x, err)
	}
	if src.taken != 2 {
		t.Fatalf("expected 2 lines consumed, got %d", src.taken)
	}
	if !p.Pending() {
		t.Fatalf("rest of the second line was dropped")
	}
	x, err = in.Read(p)
	if err != nil || SerializeToString(x) != "(car (quote (x)))" {
		t.Fatalf("second read: %v %v", x, err)
	}
	x, err = in.Read(p)
	if err != nil || SerializeToString(x) != "7" {
		t.Fatalf("third read: %v %v", x, err)
	}
	if src.taken != 3 {
		t.Fatalf("expected 3 lines consumed, got %d", src.taken)
	}
}

func TestReadChar(t *testing.T) {
	in := NewInterp(nil)
	p := NewStringPort("chars", "ab\nü")
	var got []string
	for {
		c, err := p.ReadChar()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if IsEOF(c) {
			break
		}
		got = append(got, c.(string))
	}
	want := []string{"a", "b", "\n", "ü", "\n"}
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	// read and read-char share the line buffer
	p = NewStringPort("mixed", "x(1 2)")
	c, _ := p.ReadChar()
	x, err := in.Read(p)
	if c != "x" || err != nil || SerializeToString(x) != "(1 2)" {
		t.Fatalf("mixed read: %v %v %v", c, x, err)
	}
}

func TestPrintNumbers(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{3, "3"},
		{-0.25, "-0.25"},
		{9004500500, "9004500500"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-07"},
	}
	for _, c := range cases {
		if got := SerializeToString(c.value); got != c.want {
			t.Fatalf("%v: expected %s, got %s", c.value, c.want, got)
		}
	}
	if String("plain") != "plain" || SerializeToString("q") != `"q"` {
		t.Fatalf("display and write of strings differ wrongly")
	}
	if SerializeToString(Unspecified) != "#<unspecified>" || SerializeToString(EOF) != "#<eof-object>" {
		t.Fatalf("special values print wrongly")
	}
}

func TestReadOutOfRangeNumbers(t *testing.T) {
	in, _ := newTestInterp()
	x := readAll(t, in, "1e400")[0]
	if _, ok := x.(float64); !ok {
		t.Fatalf("1e400 read as %T instead of a number", x)
	}
	runCases(t, in, []evalCase{
		{"(> 1e400 1e308)", "#t"},
		{"(< -1e400 -1e308)", "#t"},
		{"(number? 1e999)", "#t"},
	})
}
