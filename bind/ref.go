package bind

import "github.com/delaneyj/slotparty/trackable"

// Reference binds a pointer by identity. The bound func receives the pointer
// itself, or the pointee when the parameter takes T. A parameter the wrapper
// satisfies, other than an empty interface, receives the wrapper.
type Reference[T any] struct {
	p *T
}

// Ref wraps p for binding. If *T implements trackable.Tracker, slots holding
// the reference become no-ops when p is destroyed.
func Ref[T any](p *T) *Reference[T] {
	return &Reference[T]{p: p}
}

// Get returns the wrapped pointer. After the pointee was destroyed the result
// is only as safe as the pointee's own methods are.
func (r *Reference[T]) Get() *T {
	return r.p
}

func (r *Reference[T]) Tracker() (trackable.Tracker, bool) {
	if r.p == nil {
		return nil, false
	}
	t, ok := any(r.p).(trackable.Tracker)
	return t, ok
}

func (r *Reference[T]) referent() any {
	return r.p
}
