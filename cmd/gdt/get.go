package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/tree"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a node path", cli.ErrUsage)
	}
	sel := args[0]
	for _, arg := range stdinIfNone(args[1:]) {
		f, err := readFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		if err := getArg(cc.Out, f, sel, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error getting %s from %s: %w", sel, arg, err)
		}
	}
	return nil
}

// getArg writes the property named by sel, "path:key", or with no key the
// node's own properties.
func getArg(w io.Writer, f *gdtext.File, sel string, opts ...encode.EncodeOption) error {
	path, key, hasKey := strings.Cut(sel, ":")
	n, err := f.GetNode(path)
	if err != nil {
		return err
	}
	if n == nil {
		return fmt.Errorf("no node %q", path)
	}
	opts = append([]encode.EncodeOption{encode.EncodeCompact(encode.CompactFor(f.Format()))}, opts...)
	if hasKey {
		v, ok := n.Get(key)
		if !ok {
			return fmt.Errorf("node %q has no property %q", path, key)
		}
		return writeValue(w, v, opts...)
	}
	return writeNode(w, n, opts...)
}

func writeValue(w io.Writer, v *ir.Value, opts ...encode.EncodeOption) error {
	if err := encode.Encode(v, w, opts...); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}

func writeNode(w io.Writer, n *tree.Node, opts ...encode.EncodeOption) error {
	fmt.Fprintf(w, "; %s (%s)\n", n.Path(), n.Type())
	for k, v := range n.Props().All() {
		if _, err := io.WriteString(w, k+" = "); err != nil {
			return err
		}
		if err := writeValue(w, v, opts...); err != nil {
			return err
		}
	}
	return nil
}
