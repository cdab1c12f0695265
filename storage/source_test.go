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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/launix-de/lisp/scm"
)

func TestSourcesRoundTrip(t *testing.T) {
	src := NewSources(t.TempDir())
	content := strings.Repeat("(display \"compressible\")\n", 200)
	for _, name := range []string{"plain.lisp", "sub/dir/packed.lisp.xz", "fast.lisp.lz4"} {
		w, err := src.Create(name)
		if err != nil {
			t.Fatalf("%s: create: %v", name, err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("%s: close: %v", name, err)
		}
		r, err := src.Open(name)
		if err != nil {
			t.Fatalf("%s: open: %v", name, err)
		}
		got, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("%s: read: %v", name, err)
		}
		if string(got) != content {
			t.Fatalf("%s: content differs after round trip", name)
		}
	}
	raw, err := os.ReadFile(src.Files.Path("sub/dir/packed.lisp.xz"))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) >= len(content) || bytes.Contains(raw, []byte("compressible")) {
		t.Fatalf("xz file is not compressed")
	}
}

func TestSourcesSizeLimit(t *testing.T) {
	keepSettings(t)
	Settings.MaxSourceSize = "64B"
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small.lisp"), strings.Repeat("x", 64))
	writeFile(t, filepath.Join(dir, "big.lisp"), strings.Repeat("x", 65))
	src := NewSources(dir)

	r, err := src.Open("small.lisp")
	if err != nil {
		t.Fatal(err)
	}
	if got, err := io.ReadAll(r); err != nil || len(got) != 64 {
		t.Fatalf("small source: %d bytes, %v", len(got), err)
	}
	r.Close()

	r, err = src.Open("big.lisp")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err == nil || err.Error() != "big.lisp exceeds the maximum source size of 64B" {
		t.Fatalf("expected size error, got %v", err)
	}
	if len(got) > 64 {
		t.Fatalf("delivered %d bytes over the limit", len(got))
	}
}

func TestSplitS3Name(t *testing.T) {
	bucket, key, err := SplitS3Name("s3://scripts/lib/util.lisp")
	if err != nil || bucket != "scripts" || key != "lib/util.lisp" {
		t.Fatalf("unexpected split %q %q %v", bucket, key, err)
	}
	for _, name := range []string{"scripts/util.lisp", "s3://bucket-only", "s3:///key", "s3://bucket/"} {
		if _, _, err := SplitS3Name(name); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
	src := NewSources("")
	if src.backend("s3://b/k") != SourceBackend(src.S3) || src.backend("local.lisp") != SourceBackend(src.Files) {
		t.Fatalf("wrong backend dispatch")
	}
}

func TestInstallLoadsCompressedScripts(t *testing.T) {
	in := scm.NewInterp(nil)
	var out bytes.Buffer
	in.Out = scm.NewOutputPort("test", &out)
	in.Wd = t.TempDir()
	Install(in)

	cases := []struct {
		code string
		want string
	}{
		{`(define p (open-output-file "lib/math.lisp.xz"))`, "#<unspecified>"},
		{`(display "(define (cube x) (* x x x))" p)`, "#<unspecified>"},
		{`(close-output-port p)`, "#<unspecified>"},
		{`(load "lib/math.lisp.xz")`, "#<unspecified>"},
		{`(cube 3)`, "27"},
	}
	for _, c := range cases {
		result, err := in.EvalString(c.code)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c.code, err)
		}
		if got := scm.SerializeToString(result); got != c.want {
			t.Fatalf("%s: expected %s, got %s", c.code, c.want, got)
		}
	}
	if _, err := os.Stat(filepath.Join(in.Wd, "lib", "math.lisp.xz")); err != nil {
		t.Fatalf("compressed script not written below the working directory: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestPackageOpen(t *testing.T) {
	name := writeFile(t, filepath.Join(t.TempDir(), "abs.lisp"), "(+ 1 2)\n")
	r, err := Open(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil || string(content) != "(+ 1 2)\n" {
		t.Fatalf("unexpected content %q %v", content, err)
	}
}
