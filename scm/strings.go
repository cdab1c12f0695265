/*
Copyright (C) 2023-2024  Carl-Philip Hänsch

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

import "strconv"
import "strings"
import "sync"
import "unicode/utf8"
import "golang.org/x/text/collate"
import "golang.org/x/text/language"

func toString(name string, v Scmer) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", typeErrorf("%s: expected string, got %s", name, SerializeToString(v))
}

/* SQL LIKE operator implementation on strings */
func StrLike(str, pattern string) bool {
	for {
		if len(pattern) == 0 {
			return len(str) == 0
		}
		if pattern[0] == '%' { // wildcard
			pattern = pattern[1:]
			if pattern == "" {
				return true // string ends with wildcard
			}
			// match against all possible endings, right to left
			for i := len(str) - 1; i >= 0; i-- {
				if str[i] == pattern[0] && StrLike(str[i:], pattern) {
					return true
				}
			}
			return false
		}
		if len(str) > 0 && (pattern[0] == '_' || pattern[0] == str[0]) {
			pattern = pattern[1:]
			str = str[1:]
		} else {
			return false
		}
	}
}

// collation builds a string < comparator for a BCP 47 language tag.
// Digits are compared numerically, so "a2" sorts before "a10".
func collation(tag string) (*Primitive, error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return nil, typeErrorf("collate: %s", err.Error())
	}
	c := collate.New(lang, collate.Numeric, collate.IgnoreCase)
	var m sync.Mutex // Collator keeps internal buffers
	name := "collate " + tag
	return &Primitive{name, func(a ...Scmer) (Scmer, error) {
		if len(a) != 2 {
			return nil, typeErrorf("%s expects 2 parameters, given %d", name, len(a))
		}
		x, err := toString(name, a[0])
		if err != nil {
			return nil, err
		}
		y, err := toString(name, a[1])
		if err != nil {
			return nil, err
		}
		m.Lock()
		defer m.Unlock()
		return c.CompareString(x, y) < 0, nil
	}}, nil
}

func (in *Interp) declareStrings() {
	in.DeclareTitle("Strings")

	in.Declare(&Declaration{
		"concat", "concatenates values; strings are taken without quotes",
		0, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to concat"},
		}, "string",
		func(a ...Scmer) (Scmer, error) {
			var sb strings.Builder
			for _, s := range a {
				sb.WriteString(String(s))
			}
			return sb.String(), nil
		},
	})
	in.Declare(&Declaration{
		"substr", "returns a substring; positions count characters, not bytes",
		2, 3,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "string to cut"},
			DeclarationParameter{"start", "number", "first character index"},
			DeclarationParameter{"len", "number", "optional length"},
		}, "string",
		func(a ...Scmer) (Scmer, error) {
			s, err := toString("substr", a[0])
			if err != nil {
				return nil, err
			}
			runes := []rune(s)
			start, err := toNumber("substr", a[1])
			if err != nil {
				return nil, err
			}
			end := float64(len(runes))
			if len(a) > 2 {
				l, err := toNumber("substr", a[2])
				if err != nil {
					return nil, err
				}
				end = start + l
			}
			if start < 0 || end < start || end > float64(len(runes)) || start != float64(int(start)) || end != float64(int(end)) {
				return nil, typeErrorf("substr: range out of bounds for %s", SerializeToString(s))
			}
			return string(runes[int(start):int(end)]), nil
		},
	})
	in.Declare(&Declaration{
		"strlen", "returns the number of characters of a string",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
		}, "number",
		func(a ...Scmer) (Scmer, error) {
			s, err := toString("strlen", a[0])
			if err != nil {
				return nil, err
			}
			return float64(utf8.RuneCountInString(s)), nil
		},
	})
	in.Declare(&Declaration{
		"strlike", "matches the string against a wildcard pattern (% for any sequence, _ for one byte)",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"pattern", "string", "pattern with % and _ in them"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			return StrLike(String(a[0]), String(a[1])), nil
		},
	})
	in.Declare(&Declaration{
		"toLower", "turns a string into lower case",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
		}, "string",
		func(a ...Scmer) (Scmer, error) {
			return strings.ToLower(String(a[0])), nil
		},
	})
	in.Declare(&Declaration{
		"toUpper", "turns a string into upper case",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
		}, "string",
		func(a ...Scmer) (Scmer, error) {
			return strings.ToUpper(String(a[0])), nil
		},
	})
	in.Declare(&Declaration{
		"replace", "replaces all occurances in a string with another string",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"s", "string", "input string"},
			DeclarationParameter{"find", "string", "search string"},
			DeclarationParameter{"replace", "string", "replace string"},
		}, "string",
		func(a ...Scmer) (Scmer, error) {
			return strings.ReplaceAll(String(a[0]), String(a[1]), String(a[2])), nil
		},
	})
	in.Declare(&Declaration{
		"split", "splits a string using a separator or space",
		1, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
			DeclarationParameter{"separator", "string", "(optional) parameter, defaults to \" \""},
		}, "list",
		func(a ...Scmer) (Scmer, error) {
			split := " "
			if len(a) > 1 {
				split = String(a[1])
			}
			ar := strings.Split(String(a[0]), split)
			result := make([]Scmer, len(ar))
			for i, v := range ar {
				result[i] = v
			}
			return result, nil
		},
	})
	in.Declare(&Declaration{
		"string->symbol", "interns a string as a symbol",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "symbol name"},
		}, "symbol",
		func(a ...Scmer) (Scmer, error) {
			s, err := toString("string->symbol", a[0])
			if err != nil {
				return nil, err
			}
			return in.Symbols.Intern(s), nil
		},
	})
	in.Declare(&Declaration{
		"symbol->string", "returns the name of a symbol",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "symbol", "symbol"},
		}, "string",
		func(a ...Scmer) (Scmer, error) {
			if s, ok := a[0].(*Symbol); ok {
				return s.Name, nil
			}
			return nil, typeErrorf("symbol->string: expected symbol, got %s", SerializeToString(a[0]))
		},
	})
	in.Declare(&Declaration{
		"number->string", "renders a number the way display prints it",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "number", "number"},
		}, "string",
		func(a ...Scmer) (Scmer, error) {
			f, err := toNumber("number->string", a[0])
			if err != nil {
				return nil, err
			}
			return formatNumber(f), nil
		},
	})
	in.Declare(&Declaration{
		"string->number", "parses a number; returns #f if the string is not numeric",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "string", "input string"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			s, err := toString("string->number", a[0])
			if err != nil {
				return nil, err
			}
			s = strings.TrimSpace(s)
			if s == "" || !looksNumeric(s) {
				return false, nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return false, nil
			}
			return f, nil
		},
	})
	in.Declare(&Declaration{
		"collate", "returns the < operator on strings for a given language. Numbers inside the strings are sorted naturally and case is ignored.",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"language", "string", "BCP 47 language tag like de or en-US"},
		}, "func",
		func(a ...Scmer) (Scmer, error) {
			tag, err := toString("collate", a[0])
			if err != nil {
				return nil, err
			}
			return collation(tag)
		},
	})
}
