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
	"fmt"
	"sync"
	"testing"
)

func TestInternIdentity(t *testing.T) {
	st := NewSymbolTable()
	a := st.Intern("lambda")
	b := st.Intern("lambda")
	if a != b {
		t.Fatalf("Intern returned two different symbols for one name")
	}
	if st.Intern("Lambda") == a {
		t.Fatalf("symbols are case sensitive")
	}
	if st.Lookup("nothing-here") != nil {
		t.Fatalf("Lookup must not create symbols")
	}
	if st.Lookup("lambda") != a {
		t.Fatalf("Lookup does not find an interned symbol")
	}
}

func TestInternNormalizesUnicode(t *testing.T) {
	st := NewSymbolTable()
	composed := st.Intern("caf\u00e9")
	decomposed := st.Intern("cafe\u0301")
	if composed != decomposed {
		t.Fatalf("NFC and NFD spelling give different symbols")
	}
	if composed.Name != "caf\u00e9" {
		t.Fatalf("expected the composed spelling, got %q", composed.Name)
	}
}

func TestInternConcurrent(t *testing.T) {
	st := NewSymbolTable()
	const workers = 8
	results := make([][]*Symbol, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				results[w] = append(results[w], st.Intern(fmt.Sprintf("sym%d", i)))
			}
		}(w)
	}
	wg.Wait()
	for w := 1; w < workers; w++ {
		for i := range results[0] {
			if results[w][i] != results[0][i] {
				t.Fatalf("worker %d got a different symbol for sym%d", w, i)
			}
		}
	}
	if st.Len() != 200 {
		t.Fatalf("expected 200 symbols, got %d", st.Len())
	}
}

func TestSymbolsWithPrefix(t *testing.T) {
	st := NewSymbolTable()
	for _, name := range []string{"car", "cdr", "cons", "call/cc", "call-with-current-continuation", "append"} {
		st.Intern(name)
	}
	got := st.WithPrefix("ca")
	want := []string{"call-with-current-continuation", "call/cc", "car"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if len(st.WithPrefix("zzz")) != 0 {
		t.Fatalf("unexpected matches for zzz")
	}
}

func TestCompleter(t *testing.T) {
	in := NewInterp(nil)
	if _, err := in.EvalString("(define carpet 1) (define-macro carmacro (lambda () 1))"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in.Symbols.Intern("carrot") // interned but unbound, not offered
	line := []rune("(display (car")
	candidates, length := completer{in}.Do(line, len(line))
	if length != 3 {
		t.Fatalf("expected prefix length 3, got %d", length)
	}
	got := map[string]bool{}
	for _, c := range candidates {
		got[string(c)] = true
	}
	if !got[""] || !got["pet"] || !got["macro"] || got["rot"] {
		t.Fatalf("unexpected candidates %v", got)
	}
}
