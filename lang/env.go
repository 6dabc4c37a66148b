package lang

import "sort"

// Env implements a lexical environment chain.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Define binds name to value in the current frame, replacing any
// existing binding there. Ancestor frames are never touched.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Lookup retrieves the binding from the nearest frame that has one.
func (e *Env) Lookup(name string) (Value, error) {
	for cur := e; cur != nil; cur = cur.parent {
		if val, ok := cur.values[name]; ok {
			return val, nil
		}
	}
	return Value{}, &UndefinedVariableError{Symbol: name}
}

// Parent returns the parent environment.
func (e *Env) Parent() *Env {
	return e.parent
}

// Names returns every symbol visible from e, sorted and without duplicates.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for cur := e; cur != nil; cur = cur.parent {
		for name := range cur.values {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
