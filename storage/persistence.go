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

/*

source backends

Scripts and port files can live in several places:
 - file system: relative names are resolved against the working directory
 - s3://bucket/key: an object in S3 or an S3-compatible store

A backend must implement the following operations:
 - open an object for reading
 - create or replace an object

Compression (.xz, .lz4) and the size limit are applied on top of every
backend, see source.go.

*/

type SourceBackend interface {
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
}
