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

import "sort"
import "sync"
import "strings"
import "golang.org/x/text/unicode/norm"
import "github.com/launix-de/NonLockingReadMap"

// Symbol is an interned name. Two symbols with the same name are the same
// pointer, so special form dispatch and environment lookup never compare strings.
type Symbol struct {
	Name string
}

func (s Symbol) GetKey() string {
	return s.Name
}

func (s Symbol) ComputeSize() uint {
	return 16 + uint(len(s.Name))
}

func (s *Symbol) String() string {
	return s.Name
}

/*
SymbolTable maps names to symbols.

properties:
  - append-only, entries are never removed or replaced
  - lookups never block (sessions of the network REPL share one table)
  - writes are serialized so that two concurrent interns of the same new
    name still hand out the same pointer
*/
type SymbolTable struct {
	m  NonLockingReadMap.NonLockingReadMap[Symbol, string]
	mu sync.Mutex
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{m: NonLockingReadMap.New[Symbol, string]()}
}

// Intern returns the canonical symbol for name. Names are NFC normalized,
// so precomposed and decomposed spellings denote the same symbol.
func (t *SymbolTable) Intern(name string) *Symbol {
	name = norm.NFC.String(name)
	if s := t.m.Get(name); s != nil {
		return s
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if s := t.m.Get(name); s != nil {
		return s
	}
	s := &Symbol{name}
	t.m.Set(s)
	return s
}

// Lookup finds an already interned symbol without creating one
func (t *SymbolTable) Lookup(name string) *Symbol {
	return t.m.Get(norm.NFC.String(name))
}

func (t *SymbolTable) Len() int {
	return len(t.m.GetAll())
}

// WithPrefix lists all interned names starting with prefix in sorted order
func (t *SymbolTable) WithPrefix(prefix string) []string {
	all := t.m.GetAll() // sorted by name
	i := sort.Search(len(all), func(i int) bool { return all[i].Name >= prefix })
	var result []string
	for ; i < len(all) && strings.HasPrefix(all[i].Name, prefix); i++ {
		result = append(result, all[i].Name)
	}
	return result
}
