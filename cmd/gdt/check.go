package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdtext/gdtext"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	failed := 0
	for _, arg := range args {
		files, err := checkPaths(arg)
		if err != nil {
			return err
		}
		for _, file := range files {
			problems := checkFile(cfg, file)
			if len(problems) == 0 {
				if !cfg.Quiet {
					fmt.Fprintf(cc.Out, "ok %s\n", file)
				}
				continue
			}
			failed++
			for _, p := range problems {
				fmt.Fprintf(cc.Out, "%s: %s\n", file, p)
			}
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkPaths expands directories to the scene and resource files below
// them, skipping hidden directories such as .godot.
func checkPaths(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{arg}, nil
	}
	var res []string
	err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != arg && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".tscn", ".tres":
			res = append(res, path)
		}
		return nil
	})
	return res, err
}

func checkFile(cfg *CheckConfig, path string) []string {
	d, err := os.ReadFile(path)
	if err != nil {
		return []string{err.Error()}
	}
	f, err := gdtext.Load(path, cfg.fileOpts()...)
	if err != nil {
		return []string{err.Error()}
	}
	return checkLoaded(f, d)
}

// checkLoaded compares f, parsed from d, with d and looks for references
// and node paths which do not resolve.
func checkLoaded(f *gdtext.File, d []byte) []string {
	var res []string
	buf := &bytes.Buffer{}
	if err := f.Encode(buf); err != nil {
		return []string{err.Error()}
	}
	if l, ok := firstDiff(string(d), buf.String()); ok {
		res = append(res, l)
	}
	for _, r := range f.References() {
		if f.Resolve(r.Reference) == nil {
			res = append(res, fmt.Sprintf("dangling %s(%s) in %s %s", r.Kind(), r.IDKey(), r.Section.Kind(), r.Key))
		}
	}
	if f.Type() == gdtext.SceneFile {
		if _, err := f.EditTree(); err != nil && !errors.Is(err, gdtext.ErrNoLoader) {
			res = append(res, err.Error())
		}
	}
	return res
}

func firstDiff(a, b string) (string, bool) {
	if a == b {
		return "", false
	}
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	for i := 0; ; i++ {
		switch {
		case i >= len(al):
			return fmt.Sprintf("line %d: re-encoding adds %q", i+1, bl[i]), true
		case i >= len(bl):
			return fmt.Sprintf("line %d: re-encoding drops %q", i+1, al[i]), true
		case al[i] != bl[i]:
			return fmt.Sprintf("line %d: %q re-encodes as %q", i+1, al[i], bl[i]), true
		}
	}
}
