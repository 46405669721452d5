package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/ir"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	for i, arg := range stdinIfNone(args) {
		f, err := readFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		if i > 0 && cfg.YAML {
			cc.Out.Write([]byte("---\n"))
		}
		if err := dumpFile(cfg, cc.Out, f); err != nil {
			return fmt.Errorf("error dumping %s: %w", arg, err)
		}
	}
	return nil
}

func dumpFile(cfg *DumpConfig, w io.Writer, f *gdtext.File) error {
	secs := f.Sections()
	vs := make([]*ir.Value, len(secs))
	for i, s := range secs {
		vs[i] = sectionValue(s)
	}
	d, err := ir.FromSlice(vs).MarshalJSON()
	if err != nil {
		return err
	}
	if cfg.YAML {
		y, err := yaml.JSONToYAML(d)
		if err != nil {
			return fmt.Errorf("error converting to yaml: %w", err)
		}
		_, err = w.Write(y)
		return err
	}
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return fmt.Errorf("internal error: %w", err)
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}
