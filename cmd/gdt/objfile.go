package main

import (
	"fmt"
	"io"

	"github.com/gdtext/gdtext"

	"github.com/scott-cotton/cli"
)

// readFile loads a file, or parses stdin when path is "-". Loaded files
// find their parent scenes through the enclosing project.
func readFile(cfg *MainConfig, cc *cli.Context, path string) (*gdtext.File, error) {
	if path != "-" {
		return gdtext.Load(path, cfg.fileOpts()...)
	}
	d, err := io.ReadAll(cc.In)
	if err != nil {
		return nil, fmt.Errorf("error reading stdin: %w", err)
	}
	return gdtext.Parse(d, cfg.fileOpts()...)
}

// stdinIfNone gives "-" when no files are named.
func stdinIfNone(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
