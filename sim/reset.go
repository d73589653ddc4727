package sim

// ResetFunc reinitializes one stateful object between campaigns.
type ResetFunc func()

type resetEntry struct {
	handle any
	fn     ResetFunc
}

// ResetRegistry maps caller-owned handles to reset callbacks. Callbacks run
// in registration order so that campaigns restart deterministically.
//
// Handles must be comparable; pointers are the usual choice.
type ResetRegistry struct {
	entries []resetEntry
}

// NewResetRegistry creates an empty registry.
func NewResetRegistry() *ResetRegistry {
	return &ResetRegistry{entries: make([]resetEntry, 0)}
}

// Register adds fn under handle. Registering a handle twice replaces its
// callback and keeps its original position.
func (r *ResetRegistry) Register(handle any, fn ResetFunc) {
	for i := range r.entries {
		if r.entries[i].handle == handle {
			r.entries[i].fn = fn
			return
		}
	}
	r.entries = append(r.entries, resetEntry{handle: handle, fn: fn})
}

// Unregister removes handle. It reports whether the handle was present.
func (r *ResetRegistry) Unregister(handle any) bool {
	for i := range r.entries {
		if r.entries[i].handle == handle {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether handle is registered.
func (r *ResetRegistry) Contains(handle any) bool {
	for i := range r.entries {
		if r.entries[i].handle == handle {
			return true
		}
	}
	return false
}

// Len returns the number of registered handles.
func (r *ResetRegistry) Len() int {
	return len(r.entries)
}

// Each calls fn for every registered handle, in registration order.
func (r *ResetRegistry) Each(fn func(handle any)) {
	for _, e := range r.snapshot() {
		fn(e.handle)
	}
}

// ResetAll invokes every callback in registration order. Callbacks may
// register or unregister handles; those changes take effect on the next
// call.
func (r *ResetRegistry) ResetAll() {
	for _, e := range r.snapshot() {
		e.fn()
	}
}

func (r *ResetRegistry) snapshot() []resetEntry {
	out := make([]resetEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
