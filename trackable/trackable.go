// Package trackable lets objects announce their destruction to the slots
// that reference them.
package trackable

import (
	"errors"
	"fmt"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	ErrDoubleDetach = errors.New("notifier already detached")
	ErrReentrant    = errors.New("registry is notifying")
	ErrDestroyed    = errors.New("trackable already destroyed")
	ErrForeign      = errors.New("notifier belongs to another trackable")
	ErrKey          = errors.New("notifier key is not comparable")
)

// Tracker is anything whose destruction can be subscribed to. Embed
// Trackable to get an implementation.
type Tracker interface {
	Attach(fn func()) *Notifier
	Detach(n *Notifier)
	Destroyed() bool
}

type notifierState uint8

const (
	pending notifierState = iota
	fired
	detached
)

// Notifier is a single shot destruction subscription on one Trackable.
type Notifier struct {
	owner *Trackable
	key   any
	keyed bool
	fn    func()
	state notifierState
}

// Pending reports whether the notifier can still fire.
func (n *Notifier) Pending() bool {
	return n != nil && n.state == pending
}

// Fired reports whether the owner was destroyed while the notifier was attached.
func (n *Notifier) Fired() bool {
	return n != nil && n.state == fired
}

func (n *Notifier) Owner() *Trackable {
	return n.owner
}

func (n *Notifier) Key() any {
	return n.key
}

// Detach removes the notifier from its owner. It is a no-op once fired.
func (n *Notifier) Detach() {
	if n == nil {
		return
	}
	n.owner.Detach(n)
}

// Trackable keeps the set of notifiers interested in an object's
// destruction. The zero value is ready to use. It is not safe for
// concurrent use: attach, detach and destroy must happen on one goroutine.
type Trackable struct {
	notifiers mapset.Set[*Notifier]
	notifying bool
	destroyed bool
}

func (t *Trackable) set() mapset.Set[*Notifier] {
	if t.notifiers == nil {
		t.notifiers = mapset.NewThreadUnsafeSet[*Notifier]()
	}
	return t.notifiers
}

// Attach registers fn to run once when t is destroyed.
func (t *Trackable) Attach(fn func()) *Notifier {
	return t.attach(&Notifier{owner: t, fn: fn})
}

// AttachKeyed is Attach with a lookup key for DetachKeyed. A nil key gives
// an unkeyed notifier, which DetachKeyed never matches. Keys must be
// comparable.
func (t *Trackable) AttachKeyed(key any, fn func()) *Notifier {
	if key != nil && !reflect.TypeOf(key).Comparable() {
		panic(fmt.Errorf("%w: %T", ErrKey, key))
	}
	return t.attach(&Notifier{owner: t, key: key, keyed: key != nil, fn: fn})
}

func (t *Trackable) attach(n *Notifier) *Notifier {
	switch {
	case t.notifying:
		panic(fmt.Errorf("%w: attach during destroy", ErrReentrant))
	case t.destroyed:
		panic(ErrDestroyed)
	}
	t.set().Add(n)
	return n
}

// Detach removes a pending notifier without firing it.
func (t *Trackable) Detach(n *Notifier) {
	if n == nil {
		return
	}
	if n.owner != t {
		panic(ErrForeign)
	}
	switch n.state {
	case fired:
		return
	case detached:
		panic(ErrDoubleDetach)
	}
	if t.notifying {
		panic(fmt.Errorf("%w: detach during destroy", ErrReentrant))
	}
	t.set().Remove(n)
	n.state = detached
	n.fn = nil
}

// DetachKeyed removes one pending notifier attached with key. It reports
// whether a notifier was found. Nil and uncomparable keys match nothing.
func (t *Trackable) DetachKeyed(key any) bool {
	if t.notifiers == nil || key == nil || !reflect.TypeOf(key).Comparable() {
		return false
	}
	var found *Notifier
	t.notifiers.Each(func(n *Notifier) bool {
		if n.keyed && n.key == key {
			found = n
			return true
		}
		return false
	})
	if found == nil {
		return false
	}
	t.Detach(found)
	return true
}

// Destroy fires every pending notifier once, in no particular order, and
// empties the registry. Later calls do nothing. A panicking notifier does not
// stop the others; the first panic is raised again once all have fired.
func (t *Trackable) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.notifiers == nil {
		return
	}

	snapshot := t.notifiers.ToSlice()
	t.notifiers.Clear()

	t.notifying = true
	defer func() {
		t.notifying = false
	}()
	var first any
	for _, n := range snapshot {
		if r := fire(n); r != nil && first == nil {
			first = r
		}
	}
	if first != nil {
		panic(first)
	}
}

func fire(n *Notifier) (recovered any) {
	if n.state != pending {
		return nil
	}
	n.state = fired
	fn := n.fn
	n.fn = nil
	if fn == nil {
		return nil
	}
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}

func (t *Trackable) Destroyed() bool {
	return t.destroyed
}

// Notifying reports whether t is currently firing its notifiers.
func (t *Trackable) Notifying() bool {
	return t.notifying
}

// Pending returns the number of notifiers waiting for destruction.
func (t *Trackable) Pending() int {
	if t.notifiers == nil {
		return 0
	}
	return t.notifiers.Cardinality()
}
