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
	"os"
	"path/filepath"
	"testing"
)

func TestFilePorts(t *testing.T) {
	in, out := newTestInterp()
	in.Wd = t.TempDir()
	runCases(t, in, []evalCase{
		{"(define p (open-output-file \"lib.lisp\"))", ""},
		{"(port? p)", "#t"},
		{"(write '(define (sq x) (* x x)) p)", ""},
		{"(newline p)", ""},
		{`(display "(define greeting \"hi\")" p)`, ""},
		{"(close-output-port p)", ""},
		{"(write 1 p)", "TypeError"},
		{"(load \"lib.lisp\")", ""},
		{"(sq 12)", "144"},
		{"greeting", "\"hi\""},
		{"(define q (open-input-file \"lib.lisp\"))", ""},
		{"(read q)", "(define (sq x) (* x x))"},
		{"(read-char q)", "\"(\""},
		{"(read q)", "define"},
		{"(close-input-port q)", ""},
		{"(read 5)", "TypeError"},
		{"(open-input-file 5)", "TypeError"},
	})
	if out.Len() != 0 {
		t.Fatalf("file ports leaked output: %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(in.Wd, "lib.lisp")); err != nil {
		t.Fatalf("file not created in the working directory: %v", err)
	}
}

func TestLoadReportsErrorsAndContinues(t *testing.T) {
	in, out := newTestInterp()
	in.Wd = t.TempDir()
	if err := os.WriteFile(filepath.Join(in.Wd, "broken.lisp"), []byte("(define a 1)\n(car 5)\n(define b 2)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := in.Load("broken.lisp"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "broken.lisp:2: TypeError: car: expected list, got 5\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	runCases(t, in, []evalCase{{"(+ a b)", "3"}})
	if err := in.Load("missing.lisp"); err == nil {
		t.Fatalf("loading a missing file must fail")
	}
}

func TestEOFObject(t *testing.T) {
	in, _ := newTestInterp()
	in.In = NewStringPort("stdin", "")
	runCases(t, in, []evalCase{
		{"(eof-object? (read))", "#t"},
		{"(eof-object? (read-char))", "#t"},
		{"(eof-object? 1)", "#f"},
	})
}

func TestEscapeThroughLoad(t *testing.T) {
	in, out := newTestInterp()
	in.Wd = t.TempDir()
	if err := os.WriteFile(filepath.Join(in.Wd, "jump.lisp"), []byte("(define before 1)\n(kk 42)\n(define after 2)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runCases(t, in, []evalCase{
		{"(define kk #f)", ""},
		{"(call/cc (lambda (k) (set! kk k) (load \"jump.lisp\") 'not-escaped))", "42"},
		{"before", "1"},
		{"after", "LookupError"},
	})
	if out.Len() != 0 {
		t.Fatalf("escape was reported as an error: %q", out.String())
	}
	// once the call/cc returned, the escape is an ordinary error inside load
	runCases(t, in, []evalCase{{"(load \"jump.lisp\")", ""}})
	if out.String() != "jump.lisp:2: Sorry, can't continue this continuation any longer.\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
