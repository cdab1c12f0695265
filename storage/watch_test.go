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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloads(t *testing.T) {
	name := writeFile(t, filepath.Join(t.TempDir(), "watched.lisp"), "(define x 1)\n")
	reloads := make(chan string, 10)
	w, err := Watch(name, func() error {
		content, err := os.ReadFile(name)
		reloads <- string(content)
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(name, []byte("(define x 2)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case content := <-reloads:
		if content != "(define x 2)\n" {
			t.Fatalf("reload saw %q", content)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload after the file changed")
	}
}

func TestWatchMissingFile(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "missing.lisp"), func() error { return nil }); err == nil {
		t.Fatalf("watching a missing file must fail")
	}
}
