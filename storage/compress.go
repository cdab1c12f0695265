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

import "io"
import "strings"
import "github.com/ulikunitz/xz"
import "github.com/pierrec/lz4/v4"

type readCloser struct {
	io.Reader
	io.Closer
}

// compressedWriter flushes the compressor before the target is closed
type compressedWriter struct {
	io.WriteCloser
	target io.Closer
}

func (w compressedWriter) Close() error {
	err := w.WriteCloser.Close()
	if err2 := w.target.Close(); err == nil {
		err = err2
	}
	return err
}

// decompress wraps r according to the file extension of name
func decompress(name string, r io.ReadCloser) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".xz"):
		xr, err := xz.NewReader(r)
		if err != nil {
			r.Close()
			return nil, err
		}
		return readCloser{xr, r}, nil
	case strings.HasSuffix(name, ".lz4"):
		return readCloser{lz4.NewReader(r), r}, nil
	}
	return r, nil
}

// compress wraps w according to the file extension of name
func compress(name string, w io.WriteCloser) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".xz"):
		xw, err := xz.NewWriter(w)
		if err != nil {
			w.Close()
			return nil, err
		}
		return compressedWriter{xw, w}, nil
	case strings.HasSuffix(name, ".lz4"):
		return compressedWriter{lz4.NewWriter(w), w}, nil
	}
	return w, nil
}
