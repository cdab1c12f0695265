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
import "sync"

// OutputPort is the target of write, display and newline
type OutputPort struct {
	Name   string
	w      io.Writer
	closer io.Closer
	m      sync.Mutex
	closed bool
}

func NewOutputPort(name string, w io.Writer) *OutputPort {
	p := &OutputPort{Name: name, w: w}
	if c, ok := w.(io.WriteCloser); ok {
		p.closer = c
	}
	return p
}

func (p *OutputPort) WriteString(s string) error {
	p.m.Lock()
	defer p.m.Unlock()
	if p.closed {
		return typeErrorf("write to closed port %s", p.Name)
	}
	_, err := io.WriteString(p.w, s)
	return err
}

func (p *OutputPort) Write(b []byte) (int, error) {
	if err := p.WriteString(string(b)); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (p *OutputPort) Close() error {
	p.m.Lock()
	defer p.m.Unlock()
	p.closed = true
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}

// optional port argument at position i
func (in *Interp) inputPort(name string, a []Scmer, i int) (*InputPort, error) {
	if len(a) <= i {
		return in.In, nil
	}
	if p, ok := a[i].(*InputPort); ok {
		return p, nil
	}
	return nil, typeErrorf("%s: expected input port, got %s", name, SerializeToString(a[i]))
}

func (in *Interp) outputPort(name string, a []Scmer, i int) (*OutputPort, error) {
	if len(a) <= i {
		return in.Out, nil
	}
	if p, ok := a[i].(*OutputPort); ok {
		return p, nil
	}
	return nil, typeErrorf("%s: expected output port, got %s", name, SerializeToString(a[i]))
}

func (in *Interp) writer(name string, render func(Scmer) string) func(a ...Scmer) (Scmer, error) {
	return func(a ...Scmer) (Scmer, error) {
		p, err := in.outputPort(name, a, 1)
		if err != nil {
			return nil, err
		}
		if err := p.WriteString(render(a[0])); err != nil {
			return nil, err
		}
		return Unspecified, nil
	}
}

func (in *Interp) declareStreams() {
	in.DeclareTitle("Ports")

	in.Declare(&Declaration{
		"port?", "tells if the value is an input or output port",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			switch a[0].(type) {
			case *InputPort, *OutputPort:
				return true, nil
			}
			return false, nil
		},
	})
	in.Declare(&Declaration{
		"eof-object?", "tells if the value marks the end of an input port",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value"},
		}, "bool",
		func(a ...Scmer) (Scmer, error) {
			return IsEOF(a[0]), nil
		},
	})
	in.Declare(&Declaration{
		"read", "reads one expression from a port without evaluating it",
		0, 1,
		[]DeclarationParameter{
			DeclarationParameter{"port", "port", "input port, defaults to the standard input"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			p, err := in.inputPort("read", a, 0)
			if err != nil {
				return nil, err
			}
			return in.Read(p)
		},
	})
	in.Declare(&Declaration{
		"read-char", "reads one character from a port as a string of length one",
		0, 1,
		[]DeclarationParameter{
			DeclarationParameter{"port", "port", "input port, defaults to the standard input"},
		}, "string",
		func(a ...Scmer) (Scmer, error) {
			p, err := in.inputPort("read-char", a, 0)
			if err != nil {
				return nil, err
			}
			return p.ReadChar()
		},
	})
	in.Declare(&Declaration{
		"write", "writes a value in readable form",
		1, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to write"},
			DeclarationParameter{"port", "port", "output port, defaults to the standard output"},
		}, "any",
		in.writer("write", SerializeToString),
	})
	in.Declare(&Declaration{
		"display", "writes a value; strings are written without quotes",
		1, 2,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to display"},
			DeclarationParameter{"port", "port", "output port, defaults to the standard output"},
		}, "any",
		in.writer("display", String),
	})
	in.Declare(&Declaration{
		"newline", "writes a line break",
		0, 1,
		[]DeclarationParameter{
			DeclarationParameter{"port", "port", "output port, defaults to the standard output"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			p, err := in.outputPort("newline", a, 0)
			if err != nil {
				return nil, err
			}
			if err := p.WriteString("\n"); err != nil {
				return nil, err
			}
			return Unspecified, nil
		},
	})
	in.Declare(&Declaration{
		"open-input-file", "opens a source for reading",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"filename", "string", "file name or source url"},
		}, "port",
		func(a ...Scmer) (Scmer, error) {
			name, ok := a[0].(string)
			if !ok {
				return nil, typeErrorf("open-input-file: expected string, got %s", SerializeToString(a[0]))
			}
			r, err := in.Open(name)
			if err != nil {
				return nil, err
			}
			return NewInputPort(name, r), nil
		},
	})
	in.Declare(&Declaration{
		"close-input-port", "closes an input port",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"port", "port", "input port"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			p, err := in.inputPort("close-input-port", a, 0)
			if err != nil {
				return nil, err
			}
			if err := p.Close(); err != nil {
				return nil, err
			}
			return Unspecified, nil
		},
	})
	in.Declare(&Declaration{
		"open-output-file", "creates or truncates a file for writing",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"filename", "string", "file name"},
		}, "port",
		func(a ...Scmer) (Scmer, error) {
			name, ok := a[0].(string)
			if !ok {
				return nil, typeErrorf("open-output-file: expected string, got %s", SerializeToString(a[0]))
			}
			w, err := in.Create(name)
			if err != nil {
				return nil, err
			}
			return NewOutputPort(name, w), nil
		},
	})
	in.Declare(&Declaration{
		"close-output-port", "flushes and closes an output port",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"port", "port", "output port"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			p, err := in.outputPort("close-output-port", a, 0)
			if err != nil {
				return nil, err
			}
			if err := p.Close(); err != nil {
				return nil, err
			}
			return Unspecified, nil
		},
	})
	in.Declare(&Declaration{
		"load", "evaluates every expression of a source file; errors are reported and skipped",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"filename", "string", "file name or source url"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			name, ok := a[0].(string)
			if !ok {
				return nil, typeErrorf("load: expected string, got %s", SerializeToString(a[0]))
			}
			if err := in.load(name); err != nil {
				return nil, err
			}
			return Unspecified, nil
		},
	})
}
