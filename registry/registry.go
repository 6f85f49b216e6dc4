// Package registry provides the alias registry used to break cycles in
// recursive schemas and to share named fragments.
//
// Registration happens in two phases. Reserve assigns a name and marks the
// slot as reserved before the node is depicted; a walker that meets a
// reserved key again must emit a reference instead of recursing. Resolve
// stores the final fragment once the depiction is complete.
//
// A Registry belongs to a single generation pass and is not safe for
// concurrent use.
package registry

import "strconv"

// State is the phase of a registry slot.
type State uint8

const (
	// Reserved means the name is assigned but the fragment is still being built.
	Reserved State = iota + 1
	// Resolved means the fragment is final.
	Resolved
)

// Entry is a registered fragment.
type Entry[V any] struct {
	Name  string
	State State
	Value V
}

// Registry maps keys to named fragments.
type Registry[K comparable, V any] struct {
	prefix  string
	entries map[K]*Entry[V]
	order   []K
	names   map[string]bool
	seq     int
}

// New creates a registry naming its entries <prefix>1, <prefix>2, and so on.
func New[K comparable, V any](prefix string) *Registry[K, V] {
	return &Registry[K, V]{
		prefix:  prefix,
		entries: make(map[K]*Entry[V]),
		names:   make(map[string]bool),
	}
}

// Lookup returns the entry registered for key.
func (r *Registry[K, V]) Lookup(key K) (Entry[V], bool) {
	e, ok := r.entries[key]
	if !ok {
		return Entry[V]{}, false
	}
	return *e, true
}

// Reserve assigns a name to key and marks it reserved. Reserving a key twice
// returns the existing name. Generated names are numbered independently of
// the names chosen through ReserveAs and skip any of them.
func (r *Registry[K, V]) Reserve(key K) string {
	if e, ok := r.entries[key]; ok {
		return e.Name
	}
	var name string
	for {
		r.seq++
		name = r.prefix + strconv.Itoa(r.seq)
		if !r.names[name] {
			break
		}
	}
	return r.add(key, name)
}

// ReserveAs is Reserve with a caller chosen name. A key that is already
// registered keeps its name.
func (r *Registry[K, V]) ReserveAs(key K, name string) string {
	if e, ok := r.entries[key]; ok {
		return e.Name
	}
	return r.add(key, name)
}

func (r *Registry[K, V]) add(key K, name string) string {
	r.entries[key] = &Entry[V]{Name: name, State: Reserved}
	r.order = append(r.order, key)
	r.names[name] = true
	return name
}

// Resolve stores the final fragment for a key, reserving it first if needed.
func (r *Registry[K, V]) Resolve(key K, value V) string {
	name := r.Reserve(key)
	e := r.entries[key]
	e.Value = value
	e.State = Resolved
	return name
}

// Len returns the number of registered keys.
func (r *Registry[K, V]) Len() int { return len(r.order) }

// Entries returns all entries in registration order.
func (r *Registry[K, V]) Entries() []Entry[V] {
	out := make([]Entry[V], 0, len(r.order))
	for _, key := range r.order {
		out = append(out, *r.entries[key])
	}
	return out
}
