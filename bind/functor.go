// Package bind adapts Go funcs into functors and fixes their arguments.
package bind

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/delaneyj/slotparty/visit"
)

var (
	ErrNotFunc  = errors.New("not a func")
	ErrPosition = errors.New("bind position out of range")
	ErrArgCount = errors.New("wrong number of arguments")
	ErrArgType  = errors.New("argument type mismatch")
)

// Functor is the erased form of anything a slot can call.
type Functor interface {
	visit.Visitable

	// Arity is the number of arguments Call expects, or -1 for variadic
	// targets.
	Arity() int
	Call(args ...any) []any
}

type referent interface {
	referent() any
}

type function struct {
	fn  reflect.Value
	typ reflect.Type
}

// Fun wraps fn, a Go func, as a Functor. Functors are returned unchanged.
func Fun(fn any) Functor {
	if f, ok := fn.(Functor); ok {
		return f
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Errorf("%w: %T", ErrNotFunc, fn))
	}
	return &function{fn: v, typ: v.Type()}
}

func (f *function) Arity() int {
	if f.typ.IsVariadic() {
		return -1
	}
	return f.typ.NumIn()
}

// The target itself is never tracked.
func (f *function) VisitEach(func(any)) {}

func (f *function) Call(args ...any) []any {
	numIn := f.typ.NumIn()
	if f.typ.IsVariadic() {
		if len(args) < numIn-1 {
			panic(fmt.Errorf("%w: want at least %d, got %d", ErrArgCount, numIn-1, len(args)))
		}
	} else if len(args) != numIn {
		panic(fmt.Errorf("%w: want %d, got %d", ErrArgCount, numIn, len(args)))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = argValue(f.paramType(i), i, arg)
	}

	out := f.fn.Call(in)
	if len(out) == 0 {
		return nil
	}
	results := make([]any, len(out))
	for i, o := range out {
		results[i] = o.Interface()
	}
	return results
}

func (f *function) paramType(i int) reflect.Type {
	last := f.typ.NumIn() - 1
	if f.typ.IsVariadic() && i >= last {
		return f.typ.In(last).Elem()
	}
	return f.typ.In(i)
}

func argValue(pt reflect.Type, pos int, arg any) reflect.Value {
	if r, ok := arg.(referent); ok && !keepsWrapper(reflect.TypeOf(arg), pt) {
		arg = r.referent()
	}
	if arg == nil {
		return reflect.Zero(pt)
	}

	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(pt):
		return v
	case v.Kind() == reflect.Pointer && v.Type().Elem().AssignableTo(pt):
		if v.IsNil() {
			return reflect.Zero(pt)
		}
		return v.Elem()
	case isNumeric(v.Kind()) && isNumeric(pt.Kind()):
		if fitsNumeric(v, pt) {
			return v.Convert(pt)
		}
		panic(fmt.Errorf("%w: argument %d value %v does not fit %s", ErrArgType, pos, v, pt))
	}
	panic(fmt.Errorf("%w: argument %d is %s, want %s", ErrArgType, pos, v.Type(), pt))
}

// keepsWrapper reports whether a reference wrapper is passed as is rather
// than unwrapped. Empty interfaces always get the referent.
func keepsWrapper(wt, pt reflect.Type) bool {
	if wt == pt {
		return true
	}
	if pt.Kind() == reflect.Interface && pt.NumMethod() == 0 {
		return false
	}
	return wt.AssignableTo(pt)
}

// fitsNumeric reports whether v converts to pt without wrapping, truncating
// or overflowing.
func fitsNumeric(v reflect.Value, pt reflect.Type) bool {
	dst := reflect.New(pt).Elem()
	switch {
	case isInt(v.Kind()):
		x := v.Int()
		switch {
		case isInt(pt.Kind()):
			return !dst.OverflowInt(x)
		case isUint(pt.Kind()):
			return x >= 0 && !dst.OverflowUint(uint64(x))
		}
	case isUint(v.Kind()):
		x := v.Uint()
		switch {
		case isInt(pt.Kind()):
			return x <= math.MaxInt64 && !dst.OverflowInt(int64(x))
		case isUint(pt.Kind()):
			return !dst.OverflowUint(x)
		}
	default:
		f := v.Float()
		switch {
		case isInt(pt.Kind()):
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !dst.OverflowInt(int64(f))
		case isUint(pt.Kind()):
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !dst.OverflowUint(uint64(f))
		default:
			return !dst.OverflowFloat(f)
		}
	}
	return true
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
