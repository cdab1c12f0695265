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
	"strings"
	"testing"
)

func TestReplEvalWritesToOutput(t *testing.T) {
	in, out := newTestInterp()
	for _, code := range []string{"(+ 1 2)", "(define x 1)", "nope"} {
		in.replEval(readAll(t, in, code)[0])
	}
	want := resultprompt + "3\n" + "LookupError: unbound variable nope\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestReplEvalRecoversPanics(t *testing.T) {
	var log bytes.Buffer
	old := LogOutput
	LogOutput = &log
	defer func() { LogOutput = old }()

	in, out := newTestInterp()
	in.Declare(&Declaration{
		"crash", "panics",
		0, 0,
		[]DeclarationParameter{}, "any",
		func(a ...Scmer) (Scmer, error) {
			panic("boom")
		},
	})
	in.replEval(readAll(t, in, "(crash)")[0])
	if !strings.Contains(log.String(), "panic: boom") {
		t.Fatalf("panic not logged: %q", log.String())
	}
	if out.Len() != 0 {
		t.Fatalf("panic leaked into the output port: %q", out.String())
	}
	// the interpreter lock was released
	runCases(t, in, []evalCase{{"(+ 1 1)", "2"}})
}
