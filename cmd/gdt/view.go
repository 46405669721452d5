package main

import (
	"fmt"
	"io"

	"github.com/gdtext/gdtext"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	for i, arg := range stdinIfNone(args) {
		f, err := readFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("\n")); err != nil {
				return err
			}
		}
		if err := viewFile(cfg, cc.Out, f); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, w io.Writer, f *gdtext.File) error {
	return f.Encode(w, cfg.encOpts(w)...)
}
