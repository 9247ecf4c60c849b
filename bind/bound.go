package bind

import "fmt"

// Last binds values as the trailing arguments of the target.
const Last = -1

// Bound is a functor with some of its target's arguments fixed.
type Bound struct {
	target Functor
	pos    int
	values []any
}

// Bind fixes values at consecutive argument positions of target starting at
// pos. target is a Go func or a Functor, including another Bound. Use Last
// to append values after the caller's arguments.
//
// Wrap a pointer with Ref to have slots built from the result stop calling
// once the pointee, if trackable, is destroyed.
func Bind(target any, pos int, values ...any) *Bound {
	f := Fun(target)
	arity := f.Arity()
	switch {
	case pos == Last:
		if arity >= 0 && len(values) > arity {
			panic(fmt.Errorf("%w: %d trailing values for %d arguments", ErrPosition, len(values), arity))
		}
	case pos < 0:
		panic(fmt.Errorf("%w: %d", ErrPosition, pos))
	case arity >= 0 && pos+len(values) > arity:
		panic(fmt.Errorf("%w: %d+%d for %d arguments", ErrPosition, pos, len(values), arity))
	}

	return &Bound{
		target: f,
		pos:    pos,
		values: append([]any(nil), values...),
	}
}

// BindLast is Bind(target, Last, values...).
func BindLast(target any, values ...any) *Bound {
	return Bind(target, Last, values...)
}

// MemFun binds obj as the receiver of method, a method expression such as
// (*T).Method. The receiver is held through Ref so it is tracked.
func MemFun[T any](obj *T, method any) *Bound {
	return Bind(method, 0, Ref(obj))
}

func (b *Bound) Arity() int {
	arity := b.target.Arity()
	if arity < 0 {
		return -1
	}
	return arity - len(b.values)
}

func (b *Bound) Call(args ...any) []any {
	pos := b.pos
	if pos == Last {
		pos = len(args)
	}
	if pos > len(args) {
		panic(fmt.Errorf("%w: bound at %d with %d arguments", ErrArgCount, pos, len(args)))
	}

	full := make([]any, 0, len(args)+len(b.values))
	full = append(full, args[:pos]...)
	full = append(full, b.values...)
	full = append(full, args[pos:]...)
	return b.target.Call(full...)
}

// VisitEach reports the target first, then the bound values in position
// order.
func (b *Bound) VisitEach(fn func(any)) {
	fn(b.target)
	for _, v := range b.values {
		fn(v)
	}
}

func (b *Bound) Target() Functor {
	return b.target
}

func (b *Bound) Values() []any {
	return append([]any(nil), b.values...)
}
