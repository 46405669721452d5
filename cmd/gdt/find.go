package main

import (
	"fmt"
	"io"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/query"
	"github.com/gdtext/gdtext/section"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires a query", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	total := 0
	for _, arg := range stdinIfNone(args[1:]) {
		f, err := readFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		secs, err := q.Filter(f.Sections())
		if err != nil {
			return fmt.Errorf("error matching %s: %w", arg, err)
		}
		if cfg.Count {
			total += len(secs)
			continue
		}
		if err := writeSections(cc.Out, f, secs, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	if cfg.Count {
		fmt.Fprintln(cc.Out, total)
	}
	return nil
}

// writeSections writes secs, taken from f, in f's style, each followed by
// a blank line.
func writeSections(w io.Writer, f *gdtext.File, secs []*section.Section, opts ...encode.EncodeOption) error {
	opts = append([]encode.EncodeOption{encode.EncodeCompact(encode.CompactFor(f.Format()))}, opts...)
	for _, s := range secs {
		if err := s.Encode(w, opts...); err != nil {
			return err
		}
		if _, err := w.Write([]byte("\n\n")); err != nil {
			return err
		}
	}
	return nil
}
