package eval

// Ns is a mutable variable scope, chained to the scope it was created in.
// Lookups walk the chain towards the root; the root of every chain is the
// interpreter's global scope.
type Ns struct {
	vars   map[string]Value
	parent *Ns
}

// NewNs creates an empty scope with the given parent. A nil parent makes a
// root scope.
func NewNs(parent *Ns) *Ns {
	return &Ns{vars: make(map[string]Value), parent: parent}
}

// Get looks up a name, walking the scope chain.
func (ns *Ns) Get(name string) (Value, bool) {
	for s := ns; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Set writes a binding. If the name is already bound in some scope on the
// chain, that binding is updated in place; otherwise a new binding is created
// in this scope.
func (ns *Ns) Set(name string, v Value) {
	for s := ns; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return
		}
	}
	ns.vars[name] = v
}

// SetLocal writes a binding in this scope, shadowing any binding of the same
// name further up the chain.
func (ns *Ns) SetLocal(name string, v Value) {
	ns.vars[name] = v
}

// Del removes the binding nearest to this scope, if any. It reports whether a
// binding was removed.
func (ns *Ns) Del(name string) bool {
	for s := ns; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			delete(s.vars, name)
			return true
		}
	}
	return false
}
