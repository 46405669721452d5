package gdtext

import (
	"github.com/gdtext/gdtext/parse"
	"github.com/gdtext/gdtext/tree"
)

type fileOpts struct {
	loader     tree.Loader
	path       string
	permissive bool
}

type Option func(*fileOpts)

// WithLoader gives the loader used to read parent scenes.
func WithLoader(l tree.Loader) Option {
	return func(o *fileOpts) { o.loader = l }
}

// WithPath gives the file's own resource path.
func WithPath(res string) Option {
	return func(o *fileOpts) { o.path = res }
}

// Permissive accepts ext_resource sections with properties and keeps
// literals whose arguments do not validate as generic literals.
func Permissive(v bool) Option {
	return func(o *fileOpts) { o.permissive = v }
}

func getOpts(opts []Option) fileOpts {
	o := fileOpts{}
	for _, f := range opts {
		f(&o)
	}
	return o
}

func (o *fileOpts) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParsePermissive(o.permissive)}
}

func (o *fileOpts) treeOpts() []tree.Option {
	res := []tree.Option{tree.WithParseOptions(o.parseOpts()...)}
	if o.loader != nil {
		res = append(res, tree.WithLoader(o.loader))
	}
	if o.path != "" {
		res = append(res, tree.WithPath(o.path))
	}
	return res
}
