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

import "github.com/google/btree"

type macroEntry struct {
	sym         *Symbol
	transformer Scmer
}

// MacroTable holds the transformers registered by define-macro, ordered by
// name. Entries are only ever added.
type MacroTable struct {
	tree *btree.BTreeG[macroEntry]
}

func NewMacroTable() *MacroTable {
	return &MacroTable{btree.NewG[macroEntry](8, func(a, b macroEntry) bool {
		return a.sym.Name < b.sym.Name
	})}
}

func (m *MacroTable) Get(sym *Symbol) (Scmer, bool) {
	e, ok := m.tree.Get(macroEntry{sym: sym})
	if !ok {
		return nil, false
	}
	return e.transformer, true
}

func (m *MacroTable) Set(sym *Symbol, transformer Scmer) {
	m.tree.ReplaceOrInsert(macroEntry{sym, transformer})
}

// Names lists all macro names in sorted order
func (m *MacroTable) Names() []string {
	result := make([]string, 0, m.tree.Len())
	m.tree.Ascend(func(e macroEntry) bool {
		result = append(result, e.sym.Name)
		return true
	})
	return result
}

/*
 Expansion
*/

// Expand checks the syntax of x and rewrites derived forms, quasiquote and
// macro calls into the core forms quote, if, set!, define, lambda, begin and
// application. define-macro is only accepted when toplevel is set.
func (in *Interp) Expand(x Scmer, toplevel bool) (Scmer, error) {
	v, ok := x.([]Scmer)
	if !ok {
		return x, nil
	}
	if len(v) == 0 {
		return nil, syntaxError(x, "empty combination")
	}
	s := in.sym
	head, _ := v[0].(*Symbol)
	switch head {
	case s.quote:
		if err := demand(x, len(v) == 2); err != nil {
			return nil, err
		}
		return x, nil
	case s.if_:
		if len(v) == 3 {
			v = append(v[:3:3], Unspecified)
		}
		if err := demand(x, len(v) == 4); err != nil {
			return nil, err
		}
		return in.expandAll(v, false)
	case s.set:
		if err := demand(x, len(v) == 3); err != nil {
			return nil, err
		}
		if _, ok := v[1].(*Symbol); !ok {
			return nil, syntaxError(x, "can set! only a symbol")
		}
		exp, err := in.Expand(v[2], false)
		if err != nil {
			return nil, err
		}
		return []Scmer{s.set, v[1], exp}, nil
	case s.define, s.defineMacro:
		if err := demand(x, len(v) >= 3); err != nil {
			return nil, err
		}
		if sig, ok := v[1].([]Scmer); ok && len(sig) > 0 {
			// (define (f args...) body...) => (define f (lambda (args...) body...))
			lambda := append([]Scmer{s.lambda, append([]Scmer{}, sig[1:]...)}, v[2:]...)
			return in.Expand([]Scmer{head, sig[0], lambda}, toplevel)
		}
		if err := demand(x, len(v) == 3); err != nil {
			return nil, err
		}
		name, ok := v[1].(*Symbol)
		if !ok {
			return nil, syntaxError(x, "can define only a symbol")
		}
		exp, err := in.Expand(v[2], false)
		if err != nil {
			return nil, err
		}
		if head == s.define {
			return []Scmer{s.define, name, exp}, nil
		}
		if !toplevel {
			return nil, syntaxError(x, "define-macro only allowed at top level")
		}
		code, err := in.Compile(exp)
		if err != nil {
			return nil, err
		}
		proc, err := in.Eval(code, in.Global)
		if err != nil {
			return nil, err
		}
		if !IsCallable(proc) {
			return nil, syntaxError(x, "macro must be a procedure")
		}
		in.Macros.Set(name, proc)
		return Unspecified, nil
	case s.begin:
		if len(v) == 1 {
			return Unspecified, nil
		}
		return in.expandAll(v, toplevel)
	case s.lambda:
		if err := demand(x, len(v) >= 3); err != nil {
			return nil, err
		}
		if _, _, err := lambdaParams(x, v[1]); err != nil {
			return nil, err
		}
		body := v[2]
		if len(v) > 3 {
			body = append([]Scmer{s.begin}, v[2:]...)
		}
		exp, err := in.Expand(body, false)
		if err != nil {
			return nil, err
		}
		return []Scmer{s.lambda, v[1], exp}, nil
	case s.quasiquote:
		if err := demand(x, len(v) == 2); err != nil {
			return nil, err
		}
		exp, err := in.expandQuasiquote(v[1])
		if err != nil {
			return nil, err
		}
		// unquoted operands are ordinary code and may contain macro calls
		return in.Expand(exp, false)
	}
	if head != nil {
		if transformer, ok := in.Macros.Get(head); ok {
			result, err := in.Apply(transformer, v[1:]...)
			if err != nil {
				return nil, err
			}
			return in.Expand(result, toplevel)
		}
	}
	return in.expandAll(v, false)
}

// expandAll keeps the head of v and expands every other element; the head
// is expanded too unless it is a symbol.
func (in *Interp) expandAll(v []Scmer, toplevel bool) (Scmer, error) {
	result := make([]Scmer, len(v))
	for i, x := range v {
		if i == 0 {
			if _, ok := x.(*Symbol); ok {
				result[0] = x
				continue
			}
		}
		exp, err := in.Expand(x, toplevel)
		if err != nil {
			return nil, err
		}
		result[i] = exp
	}
	return result, nil
}
