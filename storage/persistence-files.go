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
package storage

import "io"
import "os"
import "path/filepath"

type FileBackend struct {
	Basepath string
}

func (f *FileBackend) Path(name string) string {
	if f.Basepath == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.Basepath, name)
}

func (f *FileBackend) Open(name string) (io.ReadCloser, error) {
	return os.Open(f.Path(name))
}

func (f *FileBackend) Create(name string) (io.WriteCloser, error) {
	p := f.Path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
		return nil, err
	}
	return os.Create(p)
}
