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
import "fmt"
import "time"
import "github.com/fsnotify/fsnotify"
import "github.com/launix-de/lisp/scm"

// Watch calls reload whenever filename changes. Bursts of events are merged
// into one reload. Close the result to stop watching.
func Watch(filename string, reload func() error) (io.Closer, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filename); err != nil {
		watcher.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				// flush all other events
				for {
					time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
					select {
					case <-watcher.Events:
						// ignore
					default:
						goto to_reread
					}
				}
			to_reread:
				// now reread the file
				func() {
					defer func() {
						if r := recover(); r != nil {
							// error happens during reload: log to console
							scm.PrintError("reloading " + filename + ": " + fmt.Sprint(r))
						}
					}()
					if err := reload(); err != nil {
						scm.PrintError("reloading " + filename + ": " + err.Error())
					}
				}()
				watcher.Add(filename) // text editors rename, so we have to rewatch
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				scm.PrintError("watching " + filename + ": " + err.Error())
			}
		}
	}()
	return watcher, nil
}
