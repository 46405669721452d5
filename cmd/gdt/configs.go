package main

import (
	"io"
	"os"

	"github.com/gdtext/gdtext"
	"github.com/gdtext/gdtext/encode"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color      bool `cli:"name=color desc='encode with color'"`
	NoColor    bool `cli:"name=nocolor desc='encode without color'"`
	Permissive bool `cli:"name=permissive desc='accept ext_resource bodies and unchecked literal arguments'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fileOpts() []gdtext.Option {
	return []gdtext.Option{gdtext.Permissive(cfg.Permissive)}
}

// colors reports whether output to w is colored: as asked, or else when w
// is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if !cfg.colors(w) {
		return nil
	}
	return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report failures'"`

	Check *cli.Command
}

type PruneConfig struct {
	*MainConfig
	Renumber bool `cli:"name=r desc='renumber resource ids after pruning'"`
	InPlace  bool `cli:"name=i desc='rewrite files in place'"`

	Prune *cli.Command
}

type TreeConfig struct {
	*MainConfig
	Types bool `cli:"name=t desc='show node types'"`

	Tree *cli.Command
}

type FindConfig struct {
	*cli.Command
	*MainConfig

	Count bool `cli:"name=c desc='only print the number of matching sections'"`
}

type DumpConfig struct {
	*MainConfig
	YAML bool `cli:"name=y aliases=yaml desc='dump as yaml'"`

	Dump *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Where   string `cli:"name=where desc='query selecting the sections to patch'"`
	String  bool   `cli:"name=s desc='patch arg as string'"`
	InPlace bool   `cli:"name=i desc='rewrite the file in place'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	All     bool `cli:"name=a desc='show unchanged section headers'"`

	Diff *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}
