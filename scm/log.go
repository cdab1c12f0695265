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

import "io"
import "os"
import "fmt"
import "sync"
import "github.com/jtolds/gls"

var contextMgr = gls.NewContextManager()

const sessionKey = "session"

var logMu sync.Mutex
var LogOutput io.Writer = os.Stderr

// WithSession runs fn with id attached to the current goroutine; goroutines
// started with gls.Go inherit it.
func WithSession(id string, fn func()) {
	contextMgr.SetValues(gls.Values{sessionKey: id}, fn)
}

// Session returns the session id of the running goroutine or ""
func Session() string {
	if v, ok := contextMgr.GetValue(sessionKey); ok {
		return v.(string)
	}
	return ""
}

// PrintError writes an error line to stderr, prefixed with the session id
// when called from inside a network session
func PrintError(msg string) {
	logMu.Lock()
	defer logMu.Unlock()
	if s := Session(); s != "" {
		fmt.Fprintf(LogOutput, "\033[31m[%s]\033[0m %s\n", s, msg)
		return
	}
	fmt.Fprintln(LogOutput, "\033[31m"+msg+"\033[0m")
}
