package main

import (
	"fmt"
	"io"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readFile(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := readFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffFiles(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffFiles(cfg *DiffConfig, w io.Writer, a, b *gdtext.File) (bool, error) {
	ds := libdiff.Sections(a.Sections(), b.Sections())
	if !libdiff.Changed(ds) {
		return false, nil
	}
	if cfg.Reverse {
		ds = libdiff.Reverse(ds)
	}
	err := libdiff.Write(w, ds, libdiff.RenderColor(cfg.colors(w)), libdiff.RenderEqual(cfg.All))
	return true, err
}
