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

import "testing"

func TestStrLike(t *testing.T) {
	cases := []struct {
		str, pattern string
		want         bool
	}{
		{"hello", "hello", true},
		{"hello", "h%", true},
		{"hello", "%llo", true},
		{"hello", "h_llo", true},
		{"hello", "h_lo", false},
		{"hello", "%x%", false},
		{"", "%", true},
		{"", "_", false},
	}
	for _, c := range cases {
		if got := StrLike(c.str, c.pattern); got != c.want {
			t.Fatalf("StrLike(%q, %q) = %v", c.str, c.pattern, got)
		}
	}
}

func TestStringPrimitives(t *testing.T) {
	in, _ := newTestInterp()
	runCases(t, in, []evalCase{
		{`(concat "a" 1 'b "c")`, `"a1bc"`},
		{`(concat)`, `""`},
		{`(strlen "grüße")`, "5"},
		{`(substr "grüße" 2)`, `"üße"`},
		{`(substr "grüße" 1 2)`, `"rü"`},
		{`(substr "abc" 2 5)`, "TypeError"},
		{`(substr 5 1)`, "TypeError"},
		{`(toUpper "abc")`, `"ABC"`},
		{`(toLower "ABC")`, `"abc"`},
		{`(replace "a-b-c" "-" "+")`, `"a+b+c"`},
		{`(split "a b c")`, `("a" "b" "c")`},
		{`(split "a,b" ",")`, `("a" "b")`},
		{`(strlike "hello" "he%")`, "#t"},
		{`(eq? (string->symbol "car") 'car)`, "#t"},
		{`(symbol->string 'car)`, `"car"`},
		{`(symbol->string "car")`, "TypeError"},
		{`(number->string 2.5)`, `"2.5"`},
		{`(string->number " 42 ")`, "42"},
		{`(string->number "abc")`, "#f"},
		{`(string->number "")`, "#f"},
	})
}

func TestCollate(t *testing.T) {
	in, _ := newTestInterp()
	runCases(t, in, []evalCase{
		{`(define less (collate "de"))`, ""},
		{`(less "a2" "a10")`, "#t"},
		{`(less "a10" "a2")`, "#f"},
		{`(less "apfel" "Birne")`, "#t"},
		{`(less "a" 1)`, "TypeError"},
		{`(less "a")`, "TypeError"},
		{`(collate "not a tag!")`, "TypeError"},
	})
}
