package main

import (
	"fmt"
	"os"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/query"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a json patch, and a file to which to apply it", cli.ErrUsage)
	}
	if cfg.InPlace && args[1] == "-" {
		return fmt.Errorf("%w: -i cannot rewrite stdin", cli.ErrUsage)
	}
	ops, err := getPatch(cfg, args[0])
	if err != nil {
		return err
	}
	var q *query.Query
	if cfg.Where != "" {
		q, err = query.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	f, err := readFile(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	n, err := patchFile(f, ops, q, cfg.Permissive)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", args[1], err)
	}
	if cfg.InPlace {
		if _, err := f.Write(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s: patched %d sections\n", args[1], n)
		return nil
	}
	if err := f.Encode(cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func getPatch(cfg *PatchConfig, arg string) (jsonpatch.Patch, error) {
	d := []byte(arg)
	if !cfg.String {
		var err error
		d, err = os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return ops, nil
}

// patchFile applies ops to the body of every section q matches, or every
// section when q is nil. It returns the number of sections patched.
func patchFile(f *gdtext.File, ops jsonpatch.Patch, q *query.Query, permissive bool) (int, error) {
	n := 0
	for _, s := range f.Sections() {
		if q != nil {
			ok, err := q.Match(s)
			if err != nil {
				return n, err
			}
			if !ok {
				continue
			}
		}
		d, err := bodyValue(s).MarshalJSON()
		if err != nil {
			return n, err
		}
		out, err := ops.Apply(d)
		if err != nil {
			return n, fmt.Errorf("%s: %w", s.Kind(), err)
		}
		v, err := ir.FromJSON(out)
		if err != nil {
			return n, err
		}
		if err := setBody(s, v); err != nil {
			return n, err
		}
		if err := s.Check(permissive); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
