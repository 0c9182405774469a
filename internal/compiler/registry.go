package compiler

// Registry is the ordered, read-only collection of compilers consulted for
// every request.
type Registry struct {
	compilers []Compiler
	fallback  Compiler
}

// NewRegistry builds a registry that tries compilers in the given order and
// returns fallback when none match.
func NewRegistry(fallback Compiler, compilers ...Compiler) *Registry {
	list := make([]Compiler, 0, len(compilers))
	for _, c := range compilers {
		if c != nil {
			list = append(list, c)
		}
	}
	return &Registry{compilers: list, fallback: fallback}
}

// Select returns the first registered compiler matching path, or the fallback.
func (r *Registry) Select(path string) Compiler {
	for _, c := range r.compilers {
		if c.Matches(path) {
			return c
		}
	}
	return r.fallback
}

// Compilers returns the registered compilers in dispatch order, fallback last.
func (r *Registry) Compilers() []Compiler {
	out := make([]Compiler, 0, len(r.compilers)+1)
	out = append(out, r.compilers...)
	if r.fallback != nil {
		out = append(out, r.fallback)
	}
	return out
}

// Lookup finds a compiler by name.
func (r *Registry) Lookup(name string) (Compiler, bool) {
	for _, c := range r.Compilers() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}
