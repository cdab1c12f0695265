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

import "fmt"

// SyntaxError is raised by the reader and the expander. Expr is the
// offending form or nil if the error was found while tokenizing.
type SyntaxError struct {
	Expr Scmer
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Expr == nil {
		return "SyntaxError: " + e.Msg
	}
	return "SyntaxError: " + SerializeToString(e.Expr) + ": " + e.Msg
}

// TypeError covers arity mismatches and primitives applied to the wrong kind of value.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.Msg
}

// LookupError is raised for references to and assignments of unbound variables.
type LookupError struct {
	Sym *Symbol
}

func (e *LookupError) Error() string {
	return "LookupError: unbound variable " + e.Sym.Name
}

func syntaxError(x Scmer, msg string) error {
	return &SyntaxError{x, msg}
}

func typeErrorf(format string, a ...any) error {
	return &TypeError{fmt.Sprintf(format, a...)}
}

// demand signals a syntax error on x if ok is false
func demand(x Scmer, ok bool, msg ...string) error {
	if ok {
		return nil
	}
	if len(msg) == 0 {
		return syntaxError(x, "wrong length")
	}
	return syntaxError(x, msg[0])
}
