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

package scm

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String renders v the way display prints it: strings without quotes.
func String(v Scmer) string {
	if s, ok := v.(string); ok {
		return s
	}
	return SerializeToString(v)
}

// SerializeToString renders v in reparsable form (write).
func SerializeToString(v Scmer) string {
	var b bytes.Buffer
	Serialize(&b, v)
	return b.String()
}

func Serialize(b *bytes.Buffer, v Scmer) {
	switch x := v.(type) {
	case nil:
		b.WriteString("#<nil>")
	case bool:
		if x {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case float64:
		b.WriteString(formatNumber(x))
	case string:
		b.WriteByte('"')
		b.WriteString(stringescaper.Replace(x))
		b.WriteByte('"')
	case *Symbol:
		b.WriteString(x.Name)
	case []Scmer:
		b.WriteByte('(')
		for i, item := range x {
			if i > 0 {
				b.WriteByte(' ')
			}
			Serialize(b, item)
		}
		b.WriteByte(')')
	case *Proc:
		// print the lambda expression, never the captured environment
		Serialize(b, x.Source)
	case *Primitive:
		b.WriteString("[native func ")
		b.WriteString(x.Name)
		b.WriteString("]")
	case unspecified:
		b.WriteString("#<unspecified>")
	case eofObject:
		b.WriteString("#<eof-object>")
	case *InputPort:
		b.WriteString("#<input-port " + x.Name + ">")
	case *OutputPort:
		b.WriteString("#<output-port " + x.Name + ">")
	default:
		b.WriteString(fmt.Sprint(v))
	}
}

var stringescaper = strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\n", "\r", "\\r", "\t", "\\t")

// formatNumber prints integral values without exponent as long as they are exact
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
