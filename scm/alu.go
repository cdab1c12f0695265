/*
Copyright (C) 2023-2026  Carl-Philip Hänsch
Copyright (C) 2013  Pieter Kelchtermans (originally licensed unter WTFPL 2.0)

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
/*
 * A minimal Scheme interpreter, as seen in lis.py and SICP
 * http://norvig.com/lispy.html
 * http://mitpress.mit.edu/sicp/full-text/sicp/book/node77.html
 *
 * Pieter Kelchtermans 2013
 * LICENSE: WTFPL 2.0
 */
package scm

import (
	"math"
)

func toNumber(name string, v Scmer) (float64, error) {
	if f, ok := v.(float64); ok {
		return f, nil
	}
	return 0, typeErrorf("%s: expected number, got %s", name, SerializeToString(v))
}

// fold applies op to all arguments from left to right
func fold(name string, a []Scmer, op func(x, y float64) float64) (Scmer, error) {
	result, err := toNumber(name, a[0])
	if err != nil {
		return nil, err
	}
	for _, v := range a[1:] {
		f, err := toNumber(name, v)
		if err != nil {
			return nil, err
		}
		result = op(result, f)
	}
	return result, nil
}

// compare checks a relation between two numbers
func compare(name string, rel func(x, y float64) bool) func(a ...Scmer) (Scmer, error) {
	return func(a ...Scmer) (Scmer, error) {
		x, err := toNumber(name, a[0])
		if err != nil {
			return nil, err
		}
		y, err := toNumber(name, a[1])
		if err != nil {
			return nil, err
		}
		return rel(x, y), nil
	}
}

func unary(name string, fn func(float64) float64) func(a ...Scmer) (Scmer, error) {
	return func(a ...Scmer) (Scmer, error) {
		x, err := toNumber(name, a[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

func (in *Interp) declareAlu() {
	in.DeclareTitle("Arithmetic / Logic")

	in.Declare(&Declaration{
		"+", "adds two or more numbers",
		0, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "values to add"},
		}, "number",
		func(a ...Scmer) (Scmer, error) {
			if len(a) == 0 {
				return 0.0, nil
			}
			return fold("+", a, func(x, y float64) float64 { return x + y })
		},
	})
	in.Declare(&Declaration{
		"-", "subtracts the other numbers from the first one; negates a single number",
		1, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "number to subtract from"},
			DeclarationParameter{"value...", "number", "numbers to subtract"},
		}, "number",
		func(a ...Scmer) (Scmer, error) {
			if len(a) == 1 {
				return fold("-", []Scmer{0.0, a[0]}, func(x, y float64) float64 { return x - y })
			}
			return fold("-", a, func(x, y float64) float64 { return x - y })
		},
	})
	in.Declare(&Declaration{
		"*", "multiplies two or more numbers",
		0, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "values to multiply"},
		}, "number",
		func(a ...Scmer) (Scmer, error) {
			if len(a) == 0 {
				return 1.0, nil
			}
			return fold("*", a, func(x, y float64) float64 { return x * y })
		},
	})
	in.Declare(&Declaration{
		"/", "divides the first number by the others; a single number is inverted",
		1, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "dividend"},
			DeclarationParameter{"value...", "number", "divisors"},
		}, "number",
		func(a ...Scmer) (Scmer, error) {
			if len(a) == 1 {
				return fold("/", []Scmer{1.0, a[0]}, func(x, y float64) float64 { return x / y })
			}
			return fold("/", a, func(x, y float64) float64 { return x / y })
		},
	})
	in.Declare(&Declaration{
		"<", "compares two numbers",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number", "left value"},
			DeclarationParameter{"b", "number", "right value"},
		}, "bool",
		compare("<", func(x, y float64) bool { return x < y }),
	})
	in.Declare(&Declaration{
		">", "compares two numbers",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number", "left value"},
			DeclarationParameter{"b", "number", "right value"},
		}, "bool",
		compare(">", func(x, y float64) bool { return x > y }),
	})
	in.Declare(&Declaration{
		"<=", "compares two numbers",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number", "left value"},
			DeclarationParameter{"b", "number", "right value"},
		}, "bool",
		compare("<=", func(x, y float64) bool { return x <= y }),
	})
	in.Declare(&Declaration{
		">=", "compares two numbers",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number", "left value"},
			DeclarationParameter{"b", "number", "right value"},
		}, "bool",
		compare(">=", func(x, y float64) bool { return x >= y }),
	})
	in.Declare(&Declaration{
		"=", "tells if two numbers are equal",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "number", "left value"},
			DeclarationParameter{"b", "number", "right value"},
		}, "bool",
		compare("=", func(x, y float64) bool { return x == y }),
	})
	in.Declare(&Declaration{
		"sqrt", "square root",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "value"},
		}, "number",
		unary("sqrt", math.Sqrt),
	})
	in.Declare(&Declaration{
		"abs", "absolute value",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "value"},
		}, "number",
		unary("abs", math.Abs),
	})
	in.Declare(&Declaration{
		"not", "negates a boolean value; everything except #f counts as true",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			return !ToBool(a[0]), nil
		},
	})
	in.Declare(&Declaration{
		"number?", "tells if the value is a number",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			_, ok := a[0].(float64)
			return ok, nil
		},
	})
	in.Declare(&Declaration{
		"boolean?", "tells if the value is #t or #f",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			_, ok := a[0].(bool)
			return ok, nil
		},
	})
	in.Declare(&Declaration{
		"string?", "tells if the value is a string",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			_, ok := a[0].(string)
			return ok, nil
		},
	})
	in.Declare(&Declaration{
		"symbol?", "tells if the value is a symbol",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			_, ok := a[0].(*Symbol)
			return ok, nil
		},
	})
	in.Declare(&Declaration{
		"procedure?", "tells if the value can be called",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			return IsCallable(a[0]), nil
		},
	})
	in.Declare(&Declaration{
		"equal?", "compares two values structurally",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "left value"},
			DeclarationParameter{"b", "any", "right value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			return Equal(a[0], a[1]), nil
		},
	})
	in.Declare(&Declaration{
		"eq?", "compares two values by identity; atoms compare by value",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "left value"},
			DeclarationParameter{"b", "any", "right value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			return Eq(a[0], a[1]), nil
		},
	})
}
