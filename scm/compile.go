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

/*
 Compilation

 Expanded code is classified once into a closed set of node types, so Eval
 dispatches with a type switch instead of comparing list heads at runtime.
*/

type node interface {
	isNode()
}

type constNode struct{ value Scmer } // literals and (quote x)
type refNode struct{ sym *Symbol }
type ifNode struct{ test, then, otherwise node }
type setNode struct {
	sym   *Symbol
	value node
}
type defineNode struct {
	sym   *Symbol
	value node
}
type lambdaNode struct {
	params []*Symbol
	rest   *Symbol
	body   node
	source Scmer
}
type beginNode struct{ body []node } // never empty
type applyNode struct {
	fn   node
	args []node
}

func (constNode) isNode()   {}
func (refNode) isNode()     {}
func (*ifNode) isNode()     {}
func (*setNode) isNode()    {}
func (*defineNode) isNode() {}
func (*lambdaNode) isNode() {}
func (*beginNode) isNode()  {}
func (*applyNode) isNode()  {}

// Compile turns an expanded expression into its node tree. The input must
// come out of Expand; shapes are rechecked only as far as needed to not crash.
func (in *Interp) Compile(x Scmer) (node, error) {
	switch v := x.(type) {
	case *Symbol:
		return refNode{v}, nil
	case []Scmer:
		if len(v) == 0 {
			return nil, syntaxError(x, "empty combination")
		}
		s := in.sym
		if head, ok := v[0].(*Symbol); ok {
			switch head {
			case s.quote:
				if err := demand(x, len(v) == 2); err != nil {
					return nil, err
				}
				return constNode{v[1]}, nil
			case s.if_:
				if err := demand(x, len(v) == 4); err != nil {
					return nil, err
				}
				parts, err := in.compileAll(v[1:])
				if err != nil {
					return nil, err
				}
				return &ifNode{parts[0], parts[1], parts[2]}, nil
			case s.set, s.define:
				if err := demand(x, len(v) == 3); err != nil {
					return nil, err
				}
				sym, ok := v[1].(*Symbol)
				if !ok {
					return nil, syntaxError(x, "can only assign a symbol")
				}
				value, err := in.Compile(v[2])
				if err != nil {
					return nil, err
				}
				if head == s.set {
					return &setNode{sym, value}, nil
				}
				return &defineNode{sym, value}, nil
			case s.lambda:
				if err := demand(x, len(v) == 3); err != nil {
					return nil, err
				}
				params, rest, err := lambdaParams(x, v[1])
				if err != nil {
					return nil, err
				}
				body, err := in.Compile(v[2])
				if err != nil {
					return nil, err
				}
				return &lambdaNode{params, rest, body, x}, nil
			case s.begin:
				if len(v) == 1 {
					return constNode{Unspecified}, nil
				}
				body, err := in.compileAll(v[1:])
				if err != nil {
					return nil, err
				}
				return &beginNode{body}, nil
			}
		}
		parts, err := in.compileAll(v)
		if err != nil {
			return nil, err
		}
		return &applyNode{parts[0], parts[1:]}, nil
	default:
		return constNode{x}, nil
	}
}

func (in *Interp) compileAll(xs []Scmer) ([]node, error) {
	result := make([]node, len(xs))
	for i, x := range xs {
		n, err := in.Compile(x)
		if err != nil {
			return nil, err
		}
		result[i] = n
	}
	return result, nil
}

// lambdaParams validates a parameter spec: a single symbol or a list of symbols
func lambdaParams(x Scmer, spec Scmer) ([]*Symbol, *Symbol, error) {
	switch p := spec.(type) {
	case *Symbol:
		return nil, p, nil
	case []Scmer:
		params := make([]*Symbol, len(p))
		for i, param := range p {
			sym, ok := param.(*Symbol)
			if !ok {
				return nil, nil, syntaxError(x, "illegal lambda argument list")
			}
			params[i] = sym
		}
		return params, nil, nil
	}
	return nil, nil, syntaxError(x, "illegal lambda argument list")
}
