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
package storage

import (
	"fmt"
	"io"
	"strings"
	"sync"

	units "github.com/docker/go-units"
	"github.com/launix-de/lisp/scm"
)

// Sources dispatches source names to their backend and applies compression
// and the size limit
type Sources struct {
	Files *FileBackend
	S3    *S3Backend
}

func NewSources(wd string) *Sources {
	settingsMu.Lock()
	s3settings := Settings.S3
	settingsMu.Unlock()
	return &Sources{&FileBackend{wd}, &S3Backend{Settings: s3settings}}
}

func (s *Sources) backend(name string) SourceBackend {
	if strings.HasPrefix(name, "s3://") {
		return s.S3
	}
	return s.Files
}

func (s *Sources) Open(name string) (io.ReadCloser, error) {
	r, err := s.backend(name).Open(name)
	if err != nil {
		return nil, err
	}
	r, err = decompress(name, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &limitedReader{r: r, name: name, limit: MaxSourceBytes()}, nil
}

func (s *Sources) Create(name string) (io.WriteCloser, error) {
	w, err := s.backend(name).Create(name)
	if err != nil {
		return nil, err
	}
	return compress(name, w)
}

// limitedReader fails as soon as the source turns out to be longer than limit
type limitedReader struct {
	r     io.ReadCloser
	name  string
	limit int64
	n     int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n > l.limit {
		return 0, fmt.Errorf("%s exceeds the maximum source size of %s", l.name, units.BytesSize(float64(l.limit)))
	}
	if int64(len(p)) > l.limit-l.n+1 {
		p = p[:l.limit-l.n+1]
	}
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.n > l.limit {
		return n - int(l.n-l.limit), fmt.Errorf("%s exceeds the maximum source size of %s", l.name, units.BytesSize(float64(l.limit)))
	}
	return n, err
}

func (l *limitedReader) Close() error {
	return l.r.Close()
}

var defaultSources *Sources
var defaultSourcesOnce sync.Once

// Open opens a source relative to the process working directory
func Open(name string) (io.ReadCloser, error) {
	defaultSourcesOnce.Do(func() { defaultSources = NewSources("") })
	return defaultSources.Open(name)
}

// Install connects an interpreter to the source backends, the trace file and
// the settings
func Install(in *scm.Interp) {
	src := NewSources(in.Wd)
	in.Open = src.Open
	in.Create = src.Create
	in.Trace = currentTrace()

	in.DeclareTitle("Settings")
	in.Declare(&scm.Declaration{
		Name: "settings", Desc: "reads or changes a runtime setting; without parameters, all settings are listed",
		MinParameter: 0, MaxParameter: 2,
		Params: []scm.DeclarationParameter{
			scm.DeclarationParameter{Name: "key", Type: "string", Desc: "name of the setting"},
			scm.DeclarationParameter{Name: "value", Type: "any", Desc: "new value"},
		}, Returns: "any",
		Fn: func(a ...scm.Scmer) (scm.Scmer, error) {
			return ChangeSettings(in, a...)
		},
	})
}
