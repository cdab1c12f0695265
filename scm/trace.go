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

import "io"
import "os"
import "fmt"
import "sync"
import "time"
import "path/filepath"
import "encoding/json"

// Tracefile writes top-level evaluations in the Chrome trace event format
// (load it in chrome://tracing or Perfetto).
type Tracefile struct {
	isFirst bool
	file    io.WriteCloser
	m       sync.Mutex
}

// CreateTrace opens a new trace file in dir
func CreateTrace(dir string) (*Tracefile, error) {
	f, err := os.Create(filepath.Join(dir, "trace_"+fmt.Sprint(time.Now().Unix())+".json"))
	if err != nil {
		return nil, err
	}
	return NewTrace(f), nil
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	result := new(Tracefile)
	result.file = file
	result.isFirst = true
	return result
}

func (t *Tracefile) Close() error {
	t.m.Lock()
	defer t.m.Unlock()
	t.file.Write([]byte("]"))
	return t.file.Close()
}

func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.EventHalf(name, cat, "B", 0, 0)
	defer t.EventHalf(name, cat, "E", 0, 0)
	f()
}

func (t *Tracefile) EventHalf(name string, cat string, typ string, tid int, pid int) {
	ts := time.Since(start).Microseconds()
	t.EventFull(name, cat, typ, ts, tid, pid)
}

type traceEvent struct {
	Name  string `json:"name"`
	Cat   string `json:"cat"`
	Ph    string `json:"ph"`
	Ts    int64  `json:"ts"`
	Pid   int    `json:"pid"`
	Tid   int    `json:"tid"`
	Scope string `json:"s"`
}

/*
*

	@name string evaluated expression
	@cat string comma separated categories (for filtering)
	@typ B/E for begin/end, X for events
	@ts timestamp in microseconds
	@pid process id
	@tid thread id
*/
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64, tid int, pid int) {
	b, _ := json.Marshal(traceEvent{name, cat, typ, ts, pid, tid, "g"})
	t.m.Lock()
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	t.file.Write(b)
	t.m.Unlock()
}

var start time.Time = time.Now()
