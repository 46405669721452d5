package main

import (
	"fmt"

	"github.com/gdtext/gdtext"

	"github.com/scott-cotton/cli"
)

func prune(cfg *PruneConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Prune.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.InPlace && len(args) == 0 {
		return fmt.Errorf("%w: -i requires files", cli.ErrUsage)
	}
	for i, arg := range stdinIfNone(args) {
		f, err := readFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		n, err := pruneFile(cfg, f)
		if err != nil {
			return fmt.Errorf("error pruning %s: %w", arg, err)
		}
		if cfg.InPlace {
			if _, err := f.Write(arg); err != nil {
				return err
			}
			fmt.Fprintf(cc.Out, "%s: removed %d sections\n", arg, n)
			continue
		}
		if i > 0 {
			cc.Out.Write([]byte("\n"))
		}
		if err := f.Encode(cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}

func pruneFile(cfg *PruneConfig, f *gdtext.File) (int, error) {
	n := f.RemoveUnusedResources()
	if !cfg.Renumber {
		return n, nil
	}
	return n, f.RenumberResourceIDs()
}
