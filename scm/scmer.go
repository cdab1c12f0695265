/*
Copyright (C) 2023-2026  Carl-Philip Hänsch

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

import "math"

/*
Scmer is the value type of the interpreter. The dynamic type is one of:

	float64      Number
	bool         Boolean
	string       String
	*Symbol      Symbol (interned, compare by pointer)
	[]Scmer      List (always proper)
	*Proc        user-defined procedure
	*Primitive   native procedure
	unspecified  result of define, set! and one-armed if
	eofObject    end of input
	*InputPort, *OutputPort
*/
type Scmer any

type unspecified struct{}

// Unspecified is what define and set! return; the REPL does not print it.
var Unspecified Scmer = unspecified{}

type eofObject struct{}

// EOF is returned by Read when the port runs dry.
var EOF Scmer = eofObject{}

// Primitive is a native procedure over already evaluated arguments.
type Primitive struct {
	Name string
	Fn   func(a ...Scmer) (Scmer, error)
}

// Proc is a closure. If Rest is set, the procedure is variadic and Rest
// receives the whole argument list.
type Proc struct {
	Params []*Symbol
	Rest   *Symbol
	Body   node
	En     *Env
	Source Scmer // the (lambda ...) form, for printing
}

func IsUnspecified(v Scmer) bool {
	_, ok := v.(unspecified)
	return ok
}

func IsEOF(v Scmer) bool {
	_, ok := v.(eofObject)
	return ok
}

func IsCallable(v Scmer) bool {
	switch v.(type) {
	case *Proc, *Primitive:
		return true
	}
	return false
}

// ToBool implements the truth rule: everything except #f is true
func ToBool(v Scmer) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func ToFloat(v Scmer) (float64, error) {
	if f, ok := v.(float64); ok {
		return f, nil
	}
	return 0, typeErrorf("expected number, got %s", SerializeToString(v))
}

func ToList(v Scmer) ([]Scmer, error) {
	if l, ok := v.([]Scmer); ok {
		return l, nil
	}
	return nil, typeErrorf("expected list, got %s", SerializeToString(v))
}

// Equal compares structurally (equal?)
func Equal(a, b Scmer) bool {
	switch av := a.(type) {
	case []Scmer:
		bv, ok := b.([]Scmer)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case float64:
		bv, ok := b.(float64)
		return ok && (av == bv || math.IsNaN(av) && math.IsNaN(bv))
	}
	return Eq(a, b)
}

// Eq compares by identity (eq?). Atoms compare by value, lists by their
// backing storage.
func Eq(a, b Scmer) bool {
	switch av := a.(type) {
	case []Scmer:
		bv, ok := b.([]Scmer)
		if !ok || len(av) != len(bv) {
			return false
		}
		return len(av) == 0 || &av[0] == &bv[0]
	case float64, bool, string, *Symbol, *Proc, *Primitive, *InputPort, *OutputPort, unspecified, eofObject:
		return a == b
	}
	return false
}
