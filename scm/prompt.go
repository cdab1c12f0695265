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

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const contprompt = "\033[32m.\033[0m "
const resultprompt = "\033[31m=\033[0m "

var errInterrupted = errors.New("interrupted")

// promptSource feeds readline lines into an InputPort. The first line of an
// expression gets the normal prompt, every further line the continuation prompt.
type promptSource struct {
	l    *readline.Instance
	cont bool
}

func (s *promptSource) ReadLine() (string, error) {
	if s.cont {
		s.l.SetPrompt(contprompt)
	} else {
		s.l.SetPrompt(newprompt)
	}
	line, err := s.l.Readline()
	if err == readline.ErrInterrupt {
		if !s.cont && line == "" {
			return "", io.EOF
		}
		return "", errInterrupted
	}
	if err != nil {
		return "", err
	}
	s.cont = true
	return line, nil
}

// completer completes global names and macro names
type completer struct {
	in *Interp
}

func isDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == '\'' || r == '`' || r == ',' || r == '"' || r == ' ' || r == '\t'
}

func (c completer) Do(line []rune, pos int) ([][]rune, int) {
	begin := pos
	for begin > 0 && !isDelimiter(line[begin-1]) {
		begin--
	}
	prefix := string(line[begin:pos])
	if prefix == "" {
		return nil, 0
	}
	var result [][]rune
	for _, name := range c.in.Symbols.WithPrefix(prefix) {
		if sym := c.in.Symbols.Lookup(name); sym != nil && c.in.Global.FindRead(sym) != nil {
			result = append(result, []rune(name[len(prefix):]))
		}
	}
	for _, name := range c.in.Macros.Names() {
		if strings.HasPrefix(name, prefix) {
			result = append(result, []rune(name[len(prefix):]))
		}
	}
	return result, len([]rune(prefix))
}

// Repl runs the interactive prompt until the user ends the input with
// Ctrl-D or with Ctrl-C on an empty line.
func (in *Interp) Repl(historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       historyFile,
		AutoComplete:      completer{in},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()

	source := &promptSource{l: l}
	port := NewLinePort("user prompt", source)
	for {
		if !port.Pending() {
			source.cont = false
		}
		x, err := in.Read(port)
		if err == errInterrupted {
			port.Discard()
			continue
		}
		var serr *SyntaxError
		if errors.As(err, &serr) {
			in.Out.WriteString(err.Error() + "\n")
			port.Discard()
			continue
		}
		if err != nil {
			return err
		}
		if IsEOF(x) {
			return nil
		}
		in.replEval(x)
	}
}

func (in *Interp) replEval(x Scmer) {
	in.mu.Lock()
	defer in.mu.Unlock()
	// anti-panic func
	defer func() {
		if r := recover(); r != nil {
			PrintError(fmt.Sprint("panic: ", r, "\n", string(debug.Stack())))
		}
	}()
	result, err := in.evalTop(x)
	if err != nil {
		in.Out.WriteString(err.Error() + "\n")
		return
	}
	if !IsUnspecified(result) {
		in.Out.WriteString(resultprompt + SerializeToString(result) + "\n")
	}
}
