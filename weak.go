package gpuobj

import "weak"

// WeakContext is a non-owning reference to a Context.
//
// It does not keep the context reachable. Upgrade fails once the context is
// destroyed or collected, and a context later allocated at the same address
// is never mistaken for the destroyed one: the reference also records the
// context's generation number. The zero WeakContext is never alive.
type WeakContext struct {
	ptr        weak.Pointer[Context]
	generation uint64
}

func newWeakContext(c *Context) WeakContext {
	return WeakContext{ptr: weak.Make(c), generation: c.generation}
}

// Upgrade returns the context if it is still alive.
func (w WeakContext) Upgrade() (*Context, bool) {
	c := w.ptr.Value()
	if c == nil || c.generation != w.generation || !c.alive.Load() {
		return nil, false
	}
	return c, true
}

// IsAlive reports whether Upgrade would succeed.
func (w WeakContext) IsAlive() bool {
	_, ok := w.Upgrade()
	return ok
}

// lookup returns the referenced context, destroyed or not, as long as it
// has not been collected.
func (w WeakContext) lookup() *Context {
	c := w.ptr.Value()
	if c == nil || c.generation != w.generation {
		return nil
	}
	return c
}
