package main

import (
	"fmt"
	"io"

	"github.com/gdtext/gdtext/ir"
	"github.com/gdtext/gdtext/tree"

	"github.com/scott-cotton/cli"
)

func printTree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, arg := range stdinIfNone(args) {
		f, err := readFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		e, err := f.EditTree()
		if err != nil {
			return fmt.Errorf("error building tree of %s: %w", arg, err)
		}
		if len(args) > 1 {
			fmt.Fprintf(cc.Out, "%s:\n", arg)
		}
		if err := writeTree(cc.Out, e.Tree(), cfg.Types); err != nil {
			return err
		}
	}
	return nil
}

// writeTree writes one node path per line. Nodes coming from a parent
// scene are marked.
func writeTree(w io.Writer, t *tree.Tree, types bool) error {
	for n := range t.Nodes() {
		line := n.Path()
		if types {
			switch {
			case n.Type() != "":
				line += " (" + n.Type() + ")"
			case n.Instance() != nil:
				line += " (instance " + ir.IDKey(n.Instance()) + ")"
			}
		}
		if n.IsInherited() && n.Parent() != nil {
			line += " [inherited]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
