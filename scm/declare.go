/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

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
import "os"
import "fmt"
import "strings"
import "path/filepath"

type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int
	Params       []DeclarationParameter
	Returns      string // any | string | number | bool | func | list | symbol | port
	Fn           func(...Scmer) (Scmer, error)
}

type DeclarationParameter struct {
	Name string
	Type string // any | string | number | bool | func | list | symbol | port
	Desc string
}

type declarationTable struct {
	titles []string
	defs   map[string]*Declaration
}

func (in *Interp) DeclareTitle(title string) {
	in.decls.titles = append(in.decls.titles, "#"+title)
}

// Declare documents a primitive and binds it in the global environment.
// Calls with a wrong number of arguments fail with a TypeError before Fn runs.
func (in *Interp) Declare(def *Declaration) {
	in.decls.titles = append(in.decls.titles, def.Name)
	in.decls.defs[def.Name] = def
	fn := def.Fn
	in.Global.Define(in.Symbols.Intern(def.Name), &Primitive{def.Name, func(a ...Scmer) (Scmer, error) {
		if len(a) < def.MinParameter || len(a) > def.MaxParameter {
			if def.MinParameter == def.MaxParameter {
				return nil, typeErrorf("%s expects %d parameters, given %d", def.Name, def.MinParameter, len(a))
			}
			return nil, typeErrorf("%s expects %d to %d parameters, given %d", def.Name, def.MinParameter, def.MaxParameter, len(a))
		}
		return fn(a...)
	}})
}

func (in *Interp) Declaration(name string) *Declaration {
	return in.decls.defs[name]
}

// slugify makes a filesystem-safe, lowercase slug from a chapter title.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "chapter"
	}
	return out
}

// WriteDocumentation generates Markdown docs:
// - index.md with links to chapters
// - one <chapter>.md file per chapter, containing all functions of that chapter
func (in *Interp) WriteDocumentation(folder string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", folder, err)
	}

	type Chapter struct {
		Title string
		Slug  string
		Fns   []*Declaration
	}
	var chapters []*Chapter
	current := &Chapter{Title: "General", Slug: "general"}
	chapters = append(chapters, current)
	for _, t := range in.decls.titles {
		if t[0] == '#' {
			current = &Chapter{Title: t[1:], Slug: slugify(t[1:])}
			chapters = append(chapters, current)
			continue
		}
		current.Fns = append(current.Fns, in.decls.defs[t])
	}

	indexPath := filepath.Join(folder, "index.md")
	indexFile, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", indexPath, err)
	}
	defer indexFile.Close()

	fmt.Fprint(indexFile, "# Documentation\n\n")
	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fmt.Fprintf(indexFile, "- [%s](%s.md)\n", ch.Title, ch.Slug)

		fp := filepath.Join(folder, ch.Slug+".md")
		f, err := os.Create(fp)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", fp, err)
		}
		fmt.Fprintf(f, "# %s\n\n", ch.Title)
		for _, def := range ch.Fns {
			fmt.Fprintf(f, "## %s\n\n", def.Name)
			if def.Desc != "" {
				fmt.Fprintf(f, "%s\n\n", def.Desc)
			}
			fmt.Fprintf(f, "**Allowed number of parameters:** %d–%d\n\n", def.MinParameter, def.MaxParameter)
			fmt.Fprint(f, "### Parameters\n\n")
			if len(def.Params) == 0 {
				fmt.Fprint(f, "_This function has no parameters._\n\n")
			} else {
				for _, p := range def.Params {
					fmt.Fprintf(f, "- **%s** (`%s`): %s\n", p.Name, p.Type, p.Desc)
				}
				fmt.Fprintln(f)
			}
			fmt.Fprintf(f, "### Returns\n\n`%s`\n\n", def.Returns)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Help prints the function list or the documentation of one function
func (in *Interp) Help(w io.Writer, name string) error {
	if name == "" {
		fmt.Fprintln(w, "Available functions:")
		for _, title := range in.decls.titles {
			if title[0] == '#' {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, "-- "+title[1:]+" --")
			} else {
				fmt.Fprintln(w, "  "+title+": "+strings.Split(in.decls.defs[title].Desc, "\n")[0])
			}
		}
		if names := in.Macros.Names(); len(names) > 0 {
			fmt.Fprintln(w, "")
			fmt.Fprintln(w, "-- Macros --")
			fmt.Fprintln(w, "  "+strings.Join(names, " "))
		}
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "get further information by typing (help \"functionname\")")
		return nil
	}
	def := in.decls.defs[name]
	if def == nil {
		return fmt.Errorf("function not found: %s", name)
	}
	fmt.Fprintln(w, "Help for: "+def.Name)
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, def.Desc)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Allowed nø of parameters: ", def.MinParameter, "-", def.MaxParameter)
	fmt.Fprintln(w, "")
	for _, p := range def.Params {
		fmt.Fprintln(w, " - "+p.Name+" ("+p.Type+"): "+p.Desc)
	}
	fmt.Fprintln(w, "")
	return nil
}
