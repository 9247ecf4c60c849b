package slot

import (
	"github.com/delaneyj/slotparty/bind"
	"github.com/delaneyj/slotparty/trackable"
	"github.com/delaneyj/slotparty/visit"
)

type rep struct {
	functor      bind.Functor
	valid        bool
	notifiers    []*trackable.Notifier
	onInvalidate []func()
}

// Slot holds a callable and stops calling it, for good, as soon as any
// trackable object bound into it by reference is destroyed.
//
// The zero Slot is empty: it is valid and Call does nothing. A Slot must not
// be copied after first use; Clone it instead.
type Slot struct {
	rep *rep
}

// New builds a Slot over f, a Go func or a bind.Functor. Every trackable
// reference bound into f gets a notifier that invalidates the slot.
func New(f any) *Slot {
	s := &Slot{}
	s.rep = newRep(f)
	return s
}

func newRep(f any) *rep {
	if f == nil {
		return nil
	}
	r := &rep{
		functor: bind.Fun(f),
		valid:   true,
	}
	for _, target := range visit.Trackables(r.functor) {
		t, _ := target.Tracker()
		if t.Destroyed() {
			r.invalidate()
			break
		}
		r.notifiers = append(r.notifiers, t.Attach(r.invalidate))
	}
	return r
}

func (r *rep) invalidate() {
	if !r.valid {
		return
	}
	r.valid = false
	r.release()

	callbacks := r.onInvalidate
	r.onInvalidate = nil
	for _, fn := range callbacks {
		fn()
	}
}

// release drops the functor and detaches every notifier that can still fire.
// Notifiers owned by a registry that is mid-destroy are left to fire into the
// already invalid rep.
func (r *rep) release() {
	for _, n := range r.notifiers {
		if n.Pending() && !n.Owner().Notifying() {
			n.Detach()
		}
	}
	r.notifiers = nil
	r.functor = nil
}

// Call invokes the held callable with args followed by the bound arguments in
// position order. It returns nil without touching bound values once the slot
// is invalid, closed or empty.
func (s *Slot) Call(args ...any) []any {
	if s == nil || s.rep == nil || !s.rep.valid || s.rep.functor == nil {
		return nil
	}
	return s.rep.functor.Call(args...)
}

// Valid reports whether no tracked dependency has been destroyed. Empty
// slots are valid.
func (s *Slot) Valid() bool {
	return s == nil || s.rep == nil || s.rep.valid
}

// Empty reports whether the slot holds nothing to call.
func (s *Slot) Empty() bool {
	return s == nil || s.rep == nil || s.rep.functor == nil
}

// Close detaches the slot from every tracked object and leaves it empty.
func (s *Slot) Close() {
	if s == nil || s.rep == nil {
		return
	}
	s.rep.release()
	s.rep.onInvalidate = nil
	s.rep = nil
}

// Assign closes the current contents and replaces them with f.
func (s *Slot) Assign(f any) {
	s.Close()
	s.rep = newRep(f)
}

// Clone returns an independent slot over the same callable with its own
// notifiers. Cloning an invalid slot gives an invalid slot.
func (s *Slot) Clone() *Slot {
	switch {
	case s.Empty() && s.Valid():
		return &Slot{}
	case !s.Valid():
		return &Slot{rep: &rep{}}
	}
	return New(s.rep.functor)
}

// Disconnect invalidates the slot as if a tracked object had died.
func (s *Slot) Disconnect() {
	if s == nil || s.rep == nil {
		return
	}
	s.rep.invalidate()
}

// OnInvalidate registers fn to run once when the slot becomes invalid. It
// runs immediately on an invalid slot and never on an empty one.
func (s *Slot) OnInvalidate(fn func()) {
	switch {
	case s == nil || s.rep == nil:
	case !s.rep.valid:
		fn()
	default:
		s.rep.onInvalidate = append(s.rep.onInvalidate, fn)
	}
}

// result extracts the first return value. A nil value yields the zero R; a
// value of another type yields false.
func result[R any](out []any) (r R, ok bool) {
	if len(out) == 0 {
		return r, false
	}
	if out[0] == nil {
		return r, true
	}
	r, ok = out[0].(R)
	return r, ok
}
