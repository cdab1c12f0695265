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

// expandQuasiquote rewrites a template into list construction code:
//
//	`x         => 'x
//	`,x        => x
//	`(,@x y)   => (append x `(y))
//	`(x y)     => (cons `x `(y))
func (in *Interp) expandQuasiquote(x Scmer) (Scmer, error) {
	s := in.sym
	v, ok := x.([]Scmer)
	if !ok || len(v) == 0 {
		return []Scmer{s.quote, x}, nil
	}
	if v[0] == Scmer(s.unquoteSplicing) {
		return nil, syntaxError(x, "can't splice here")
	}
	if v[0] == Scmer(s.unquote) {
		if err := demand(x, len(v) == 2); err != nil {
			return nil, err
		}
		return v[1], nil
	}
	rest, err := in.expandQuasiquote(v[1:])
	if err != nil {
		return nil, err
	}
	if h, ok := v[0].([]Scmer); ok && len(h) > 0 && h[0] == Scmer(s.unquoteSplicing) {
		if err := demand(h, len(h) == 2); err != nil {
			return nil, err
		}
		return []Scmer{s.append, h[1], rest}, nil
	}
	if v[0] == Scmer(s.quasiquote) {
		// nested template: expand one level, then the inner template
		inner, ok := rest.([]Scmer)
		if !ok || len(inner) < 2 {
			return nil, syntaxError(x, "malformed nested quasiquote")
		}
		return in.expandQuasiquote(inner[1])
	}
	first, err := in.expandQuasiquote(v[0])
	if err != nil {
		return nil, err
	}
	return []Scmer{s.cons, first, rest}, nil
}
