package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gdtext/gdtext/encode"
	"github.com/gdtext/gdtext/ir"
)

type debug struct {
	Parse bool
	Tree  bool
	Refs  bool
	Load  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("GDTEXT_DEBUG_PARSE")
	d.Tree = boolEnv("GDTEXT_DEBUG_TREE")
	d.Refs = boolEnv("GDTEXT_DEBUG_REFS")
	d.Load = boolEnv("GDTEXT_DEBUG_LOAD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Tree() bool {
	return d.Tree
}
func Refs() bool {
	return d.Refs
}
func Load() bool {
	return d.Load
}

// Writer is where debug output goes.
func Writer() io.Writer {
	return os.Stderr
}

// Logf writes a line to stderr. *ir.Value arguments are rendered as text.
func Logf(f string, args ...any) {
	for i, a := range args {
		if v, ok := a.(*ir.Value); ok {
			s, err := encode.String(v)
			if err != nil {
				s = fmt.Sprintf("<%s: %v>", v.Type, err)
			}
			args[i] = s
		}
	}
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

// LogAny writes v to stderr as a line of JSON.
func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
