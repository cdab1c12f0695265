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
/*
	lisp: a small Lisp with macros, quasiquote, tail calls and escape continuations

	https://pkelchte.wordpress.com/2013/12/31/scm-go/

*/
package main

import "os"
import "fmt"
import "flag"
import "crypto/rand"
import "path/filepath"
import "github.com/google/uuid"
import "github.com/dc0d/onexit"
import "github.com/launix-de/lisp/scm"
import "github.com/launix-de/lisp/storage"

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func fail(err error) {
	scm.PrintError(err.Error())
	onexit.ForceExit(1)
}

func main() {
	// init random generator for UUIDs
	uuid.SetRand(rand.Reader)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute lisp command (repeatable)")

	wd, _ := os.Getwd() // sources are relative to working directory... or change with -wd PATH
	flag.StringVar(&wd, "wd", wd, "Working Directory for (load) and (open-input-file) (Default: .)")

	configfile := ""
	flag.StringVar(&configfile, "config", "", "YAML settings file")

	watch := false
	flag.BoolVar(&watch, "watch", false, "Reload source files when they change")

	listen := ""
	flag.StringVar(&listen, "listen", "", "Serve a websocket REPL on this address, e.g. :4322")

	quiet := false
	flag.BoolVar(&quiet, "q", false, "Do not print the banner")

	docfolder := ""
	flag.StringVar(&docfolder, "doc", "", "Write the function reference as markdown into this folder and exit")

	flag.Parse()
	sources := flag.Args()

	if !quiet {
		fmt.Print(`lisp Copyright (C) 2023-2026   Carl-Philip Hänsch
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;

`)
	}

	// settings initialization
	if configfile != "" {
		if err := storage.LoadSettings(configfile); err != nil {
			fail(err)
		}
	}
	if err := storage.InitSettings(); err != nil {
		fail(err)
	}

	// all interpreters of this process share the symbol table
	symbols := scm.NewSymbolTable()
	in := scm.NewInterp(symbols)
	in.Wd = wd
	storage.Install(in)

	if docfolder != "" {
		if err := in.WriteDocumentation(docfolder); err != nil {
			fail(err)
		}
		onexit.ForceExit(0)
	}

	// scripts initialization
	for _, scmfile := range append(append([]string{}, storage.Settings.Preload...), sources...) {
		if scmfile == "-" {
			if err := in.Run(in.In, in.Out); err != nil {
				fail(err)
			}
			continue
		}
		fmt.Println("Loading " + scmfile + " ...")
		if err := in.Load(scmfile); err != nil {
			scm.PrintError(err.Error())
			continue
		}
		if watch {
			name := scmfile
			path := name
			if !filepath.IsAbs(path) {
				path = filepath.Join(wd, path)
			}
			w, err := storage.Watch(path, func() error {
				fmt.Println("Reloading " + name + " ...")
				return in.Load(name)
			})
			if err != nil {
				scm.PrintError(err.Error())
				continue
			}
			onexit.Register(func() { w.Close() })
		}
	}
	for _, command := range commands {
		fmt.Println("Executing " + command + " ...")
		result, err := in.EvalString(command)
		if err != nil {
			scm.PrintError(err.Error())
			continue
		}
		if !scm.IsUnspecified(result) {
			fmt.Println(scm.SerializeToString(result))
		}
	}

	if listen != "" {
		go func() {
			err := scm.ServeWebsocket(listen, symbols, func(session *scm.Interp) {
				session.Wd = wd
				storage.Install(session)
			})
			if err != nil {
				scm.PrintError("websocket server: " + err.Error())
			}
		}()
	}

	// SIGINT and SIGTERM are trapped by onexit, which runs the registered hooks
	if len(commands) > 0 && listen == "" {
		onexit.ForceExit(0)
	}

	if !quiet {
		fmt.Print(`
    Type (help) to show help

`)
	}

	// REPL shell
	if err := in.Repl(storage.Settings.HistoryFile); err != nil {
		fail(err)
	}

	// normal shutdown
	onexit.ForceExit(0)
}
