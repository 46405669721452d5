package ir

import (
	"fmt"
	"slices"
	"sync"
)

// Ctor describes a registered literal constructor.
type Ctor struct {
	Name string
	// Arity is the required number of arguments, or -1 for any.
	Arity int
	// Layout is applied to literals built by NewLiteral.
	Layout Layout
	// Check validates the arguments once the arity matches.
	Check func(args []*Value) error
}

var (
	mu       sync.RWMutex
	registry = map[string]*Ctor{}
)

func Register(c *Ctor) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("cannot register unnamed literal")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, present := registry[c.Name]; present {
		return fmt.Errorf("%s: %w", c.Name, ErrRegistered)
	}
	registry[c.Name] = c
	return nil
}

func Lookup(name string) *Ctor {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Registered returns the sorted names of all registered literals.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]string, 0, len(registry))
	for name := range registry {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// Validate checks args against the constructor registered under name.
// Unregistered names always validate.
func Validate(name string, args []*Value) error {
	c := Lookup(name)
	if c == nil {
		return nil
	}
	if c.Arity >= 0 && len(args) != c.Arity {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrValidation, name, c.Arity, len(args))
	}
	if c.Check == nil {
		return nil
	}
	if err := c.Check(args); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrValidation, name, err)
	}
	return nil
}

// NewLiteral builds the literal name(args...), validating it if name is
// registered.
func NewLiteral(name string, args ...*Value) (*Value, error) {
	if err := Validate(name, args); err != nil {
		return nil, err
	}
	v := GenericLiteral(name, args...)
	if c := Lookup(name); c != nil {
		v.Layout = c.Layout
	}
	return v, nil
}

func init() {
	for _, c := range []*Ctor{
		{Name: Vector2Name, Arity: 2, Check: allNumbers},
		{Name: Vector3Name, Arity: 3, Check: allNumbers},
		{Name: ColorName, Arity: 4, Check: unitNumbers},
		{Name: NodePathName, Arity: 1, Layout: LayoutKnown, Check: oneString},
		{Name: ExtResourceName, Arity: 1, Check: resourceID},
		{Name: SubResourceName, Arity: 1, Check: resourceID},
	} {
		if err := Register(c); err != nil {
			panic(err)
		}
	}
}

func allNumbers(args []*Value) error {
	for i, a := range args {
		if a.Type != NumberType {
			return fmt.Errorf("argument %d is %s, not a number", i, a.Type)
		}
	}
	return nil
}

func unitNumbers(args []*Value) error {
	if err := allNumbers(args); err != nil {
		return err
	}
	for i, a := range args {
		f, _ := a.AsFloat()
		if !(f >= 0 && f <= 1) {
			return fmt.Errorf("argument %d (%s) out of range [0,1]", i, a.Number)
		}
	}
	return nil
}

func oneString(args []*Value) error {
	if args[0].Type != StringType {
		return fmt.Errorf("argument is %s, not a string", args[0].Type)
	}
	return nil
}

func resourceID(args []*Value) error {
	switch a := args[0]; {
	case a.IsInt(), a.Type == StringType:
		return nil
	default:
		return fmt.Errorf("id is %s, want integer or string", a.Type)
	}
}
