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

import (
	"fmt"
	"os"
	"sync"

	"github.com/dc0d/onexit"
	units "github.com/docker/go-units"
	"github.com/launix-de/lisp/scm"
	"gopkg.in/yaml.v3"
)

type S3Settings struct {
	AccessKeyID     string `yaml:"access_key_id"`     // AWS or S3-compatible access key
	SecretAccessKey string `yaml:"secret_access_key"` // AWS or S3-compatible secret key
	Region          string `yaml:"region"`            // AWS region (e.g., "us-east-1")
	Endpoint        string `yaml:"endpoint"`          // Custom endpoint for S3-compatible storage (MinIO, etc.)
	ForcePathStyle  bool   `yaml:"force_path_style"`  // Use path-style URLs (required for MinIO)
}

type SettingsT struct {
	HistoryFile   string     `yaml:"history_file"`
	Preload       []string   `yaml:"preload"`
	Trace         bool       `yaml:"trace"`
	TraceDir      string     `yaml:"trace_dir"`
	MaxSourceSize string     `yaml:"max_source_size"` // e.g. 16MiB
	S3            S3Settings `yaml:"s3"`
}

var Settings SettingsT = SettingsT{".lisp-history.tmp", nil, false, "", "16MiB", S3Settings{}}

var settingsMu sync.Mutex
var trace *scm.Tracefile

// LoadSettings reads a YAML settings file over the defaults
func LoadSettings(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	s := Settings
	if err := dec.Decode(&s); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if _, err := units.RAMInBytes(s.MaxSourceSize); err != nil {
		return fmt.Errorf("%s: max_source_size: %w", filename, err)
	}
	settingsMu.Lock()
	Settings = s
	settingsMu.Unlock()
	return nil
}

// call this after you filled Settings
func InitSettings() error {
	if err := SetTrace(Settings.Trace); err != nil {
		return err
	}
	onexit.Register(func() { SetTrace(false) }) // close trace file on exit
	return nil
}

// SetTrace opens or closes the process-wide trace file. Interps pick it up
// in Install.
func SetTrace(on bool) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if trace != nil {
		trace.Close()
		trace = nil
	}
	Settings.Trace = on
	if on {
		t, err := scm.CreateTrace(Settings.TraceDir)
		if err != nil {
			Settings.Trace = false
			return err
		}
		trace = t
	}
	return nil
}

func currentTrace() *scm.Tracefile {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return trace
}

// MaxSourceBytes is the configured size limit for sources
func MaxSourceBytes() int64 {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	n, err := units.RAMInBytes(Settings.MaxSourceSize)
	if err != nil {
		return 16 * units.MiB
	}
	return n
}

// ChangeSettings implements (settings), (settings key) and (settings key value)
func ChangeSettings(in *scm.Interp, a ...scm.Scmer) (scm.Scmer, error) {
	if len(a) == 0 {
		settingsMu.Lock()
		defer settingsMu.Unlock()
		return []scm.Scmer{
			"HistoryFile", Settings.HistoryFile,
			"Preload", stringList(Settings.Preload),
			"Trace", Settings.Trace,
			"TraceDir", Settings.TraceDir,
			"MaxSourceSize", Settings.MaxSourceSize,
		}, nil
	} else if len(a) == 1 {
		settingsMu.Lock()
		defer settingsMu.Unlock()
		switch scm.String(a[0]) {
		case "HistoryFile":
			return Settings.HistoryFile, nil
		case "Preload":
			return stringList(Settings.Preload), nil
		case "Trace":
			return Settings.Trace, nil
		case "TraceDir":
			return Settings.TraceDir, nil
		case "MaxSourceSize":
			return Settings.MaxSourceSize, nil
		default:
			return nil, fmt.Errorf("unknown setting: %s", scm.String(a[0]))
		}
	} else {
		switch scm.String(a[0]) {
		case "Trace":
			if err := SetTrace(scm.ToBool(a[1])); err != nil {
				return nil, err
			}
			in.Trace = currentTrace()
		case "TraceDir":
			settingsMu.Lock()
			Settings.TraceDir = scm.String(a[1])
			settingsMu.Unlock()
		case "MaxSourceSize":
			size := scm.String(a[1])
			if f, ok := a[1].(float64); ok {
				size = units.BytesSize(f)
			}
			if _, err := units.RAMInBytes(size); err != nil {
				return nil, err
			}
			settingsMu.Lock()
			Settings.MaxSourceSize = size
			settingsMu.Unlock()
		case "HistoryFile", "Preload":
			return nil, fmt.Errorf("setting %s is read only at runtime", scm.String(a[0]))
		default:
			return nil, fmt.Errorf("unknown setting: %s", scm.String(a[0]))
		}
		return true, nil
	}
}

func stringList(l []string) []scm.Scmer {
	result := make([]scm.Scmer, len(l))
	for i, s := range l {
		result[i] = s
	}
	return result
}
