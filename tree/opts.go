package tree

import "github.com/gdtext/gdtext/parse"

// Loader returns the text of a resource given its res:// path.
type Loader interface {
	Load(res string) ([]byte, error)
}

type buildOpts struct {
	loader    Loader
	path      string
	parseOpts []parse.ParseOption
}

type Option func(*buildOpts)

// WithLoader gives the loader used to read parent scenes.
func WithLoader(l Loader) Option {
	return func(o *buildOpts) { o.loader = l }
}

// WithPath gives the resource path of the scene being built, so that a scene
// inheriting from itself is reported as a cycle.
func WithPath(res string) Option {
	return func(o *buildOpts) { o.path = res }
}

// WithParseOptions gives the options used to parse parent scenes.
func WithParseOptions(opts ...parse.ParseOption) Option {
	return func(o *buildOpts) { o.parseOpts = opts }
}
