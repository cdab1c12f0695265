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

import "errors"
import "github.com/google/uuid"

// escape travels up the Go stack like any other error until the call/cc
// that created token catches it.
type escape struct {
	token uuid.UUID
	value Scmer
}

func (e *escape) Error() string {
	return "escape continuation " + e.token.String() + " invoked outside of its call/cc"
}

var ErrContinuationExpired = errors.New("Sorry, can't continue this continuation any longer.")

// callWithEscape implements call/cc for escaping only: proc receives a
// procedure that makes this call return its argument. The continuation is
// dead as soon as callWithEscape returns.
func (in *Interp) callWithEscape(proc Scmer) (Scmer, error) {
	token := uuid.New()
	expired := false
	throw := &Primitive{"escape", func(a ...Scmer) (Scmer, error) {
		if expired {
			return nil, ErrContinuationExpired
		}
		var value Scmer = Unspecified
		if len(a) == 1 {
			value = a[0]
		} else if len(a) > 1 {
			value = append([]Scmer{}, a...)
		}
		return nil, &escape{token, value}
	}}
	defer func() { expired = true }()
	result, err := in.Apply(proc, throw)
	if err != nil {
		var e *escape
		if errors.As(err, &e) && e.token == token {
			return e.value, nil
		}
		return nil, err
	}
	return result, nil
}
