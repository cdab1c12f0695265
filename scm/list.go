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

// toList is ToList with the name of the primitive in the error
func toList(name string, v Scmer) ([]Scmer, error) {
	if l, ok := v.([]Scmer); ok {
		return l, nil
	}
	return nil, typeErrorf("%s: expected list, got %s", name, SerializeToString(v))
}

func (in *Interp) declareList() {
	in.DeclareTitle("Lists")

	in.Declare(&Declaration{
		"list", "returns a list containing the parameters as its arguments",
		0, 10000,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values for the list"},
		}, "list",
		func(a ...Scmer) (Scmer, error) {
			return append(make([]Scmer, 0, len(a)), a...), nil
		},
	})
	in.Declare(&Declaration{
		"length", "returns the number of elements of a list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "list"},
		}, "number",
		func(a ...Scmer) (Scmer, error) {
			l, err := toList("length", a[0])
			if err != nil {
				return nil, err
			}
			return float64(len(l)), nil
		},
	})
	in.Declare(&Declaration{
		"cons", "constructs a fresh list from a head and a tail list",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"car", "any", "new head element"},
			DeclarationParameter{"cdr", "list", "tail"},
		}, "list",
		func(a ...Scmer) (Scmer, error) {
			tail, err := toList("cons", a[1])
			if err != nil {
				return nil, err
			}
			result := make([]Scmer, len(tail)+1)
			result[0] = a[0]
			copy(result[1:], tail)
			return result, nil
		},
	})
	in.Declare(&Declaration{
		"car", "extracts the head of a list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "non-empty list"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			l, err := toList("car", a[0])
			if err != nil {
				return nil, err
			}
			if len(l) == 0 {
				return nil, typeErrorf("car: empty list")
			}
			return l[0], nil
		},
	})
	in.Declare(&Declaration{
		"cdr", "extracts the tail of a list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"list", "list", "non-empty list"},
		}, "list",
		func(a ...Scmer) (Scmer, error) {
			l, err := toList("cdr", a[0])
			if err != nil {
				return nil, err
			}
			if len(l) == 0 {
				return nil, typeErrorf("cdr: empty list")
			}
			return append(make([]Scmer, 0, len(l)-1), l[1:]...), nil
		},
	})
	in.Declare(&Declaration{
		"append", "concatenates lists into a fresh list",
		0, 10000,
		[]DeclarationParameter{
			DeclarationParameter{"list...", "list", "lists to concatenate"},
		}, "list",
		func(a ...Scmer) (Scmer, error) {
			result := make([]Scmer, 0)
			for _, v := range a {
				l, err := toList("append", v)
				if err != nil {
					return nil, err
				}
				result = append(result, l...)
			}
			return result, nil
		},
	})
	in.Declare(&Declaration{
		"list?", "tells if the value is a list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			_, ok := a[0].([]Scmer)
			return ok, nil
		},
	})
	in.Declare(&Declaration{
		"null?", "tells if the value is the empty list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			l, ok := a[0].([]Scmer)
			return ok && len(l) == 0, nil
		},
	})
	in.Declare(&Declaration{
		"pair?", "tells if the value is a non-empty list",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			l, ok := a[0].([]Scmer)
			return ok && len(l) > 0, nil
		},
	})
	in.Declare(&Declaration{
		"apply", "calls a procedure; the last argument is a list that is spread into the argument list",
		2, 10000,
		[]DeclarationParameter{
			DeclarationParameter{"procedure", "func", "procedure to call"},
			DeclarationParameter{"arg...", "any", "leading arguments"},
			DeclarationParameter{"list", "list", "remaining arguments"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			last, err := toList("apply", a[len(a)-1])
			if err != nil {
				return nil, err
			}
			args := append(append(make([]Scmer, 0, len(a)+len(last)), a[1:len(a)-1]...), last...)
			return in.Apply(a[0], args...)
		},
	})
}
