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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDeclareChecksArity(t *testing.T) {
	in, _ := newTestInterp()
	cases := []struct {
		code string
		msg  string
	}{
		{"(car)", "TypeError: car expects 1 parameters, given 0"},
		{"(cons 1 2 3)", "TypeError: cons expects 2 parameters, given 3"},
		{"(write)", "TypeError: write expects 1 to 2 parameters, given 0"},
	}
	for _, c := range cases {
		_, err := in.EvalString(c.code)
		if err == nil || err.Error() != c.msg {
			t.Fatalf("%s: expected %q, got %v", c.code, c.msg, err)
		}
	}
}

func TestDeclareCustomPrimitive(t *testing.T) {
	in, _ := newTestInterp()
	in.DeclareTitle("Custom")
	in.Declare(&Declaration{
		"twice", "doubles a number",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"n", "number", "number to double"},
		}, "number",
		func(a ...Scmer) (Scmer, error) {
			return a[0].(float64) * 2, nil
		},
	})
	runCases(t, in, []evalCase{
		{"(twice 21)", "42"},
		{"(twice 1 2)", "TypeError"},
	})
	if d := in.Declaration("twice"); d == nil || d.Returns != "number" {
		t.Fatalf("declaration not recorded")
	}
}

func TestHelp(t *testing.T) {
	in, out := newTestInterp()
	runCases(t, in, []evalCase{{"(help)", ""}})
	text := out.String()
	for _, want := range []string{"-- Lists --", "-- Arithmetic / Logic --", "  car: ", "-- Macros --", "and let"} {
		if !strings.Contains(text, want) {
			t.Fatalf("help output lacks %q:\n%s", want, text)
		}
	}
	var b bytes.Buffer
	if err := in.Help(&b, "cons"); err != nil || !strings.Contains(b.String(), "Help for: cons") {
		t.Fatalf("help for cons: %v %s", err, b.String())
	}
	if err := in.Help(&b, "no-such-function"); err == nil || err.Error() != "function not found: no-such-function" {
		t.Fatalf("expected function not found, got %v", err)
	}
}

func TestWriteDocumentation(t *testing.T) {
	in := NewInterp(nil)
	dir := filepath.Join(t.TempDir(), "docs")
	if err := in.WriteDocumentation(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatalf("index.md: %v", err)
	}
	if !strings.Contains(string(index), "[Lists](lists.md)") {
		t.Fatalf("index lacks the lists chapter:\n%s", index)
	}
	lists, err := os.ReadFile(filepath.Join(dir, "lists.md"))
	if err != nil || !strings.Contains(string(lists), "## cdr") {
		t.Fatalf("lists.md: %v\n%s", err, lists)
	}
}

func TestSlugify(t *testing.T) {
	for in, want := range map[string]string{
		"Arithmetic / Logic": "arithmetic--logic",
		"  Ports ":           "ports",
		"???":                "chapter",
	} {
		if got := slugify(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}
