package visit

import "github.com/delaneyj/slotparty/trackable"

// Visitable is a callable that carries bound values.
type Visitable interface {
	VisitEach(fn func(any))
}

// Target is a bound value that may refer to a trackable object.
type Target interface {
	Tracker() (trackable.Tracker, bool)
}

// Each walks root depth first and calls fn for every bound leaf value.
// Visitable children, nested binds included, are descended into and never
// passed to fn themselves.
func Each(root any, fn func(any)) {
	v, ok := root.(Visitable)
	if !ok {
		return
	}
	walk(v, fn)
}

func walk(v Visitable, fn func(any)) {
	v.VisitEach(func(child any) {
		if nested, ok := child.(Visitable); ok {
			walk(nested, fn)
			return
		}
		fn(child)
	})
}

// Trackables returns every bound value of root that refers to a live or
// destroyed trackable object, one entry per occurrence.
func Trackables(root any) []Target {
	var targets []Target
	Each(root, func(value any) {
		target, ok := value.(Target)
		if !ok {
			return
		}
		if _, ok := target.Tracker(); ok {
			targets = append(targets, target)
		}
	})
	return targets
}
