package slot_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/delaneyj/slotparty/bind"
	"github.com/delaneyj/slotparty/slot"
	"github.com/delaneyj/slotparty/trackable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type param struct {
	trackable.Trackable
	name string
}

func newParam(name string) *param {
	return &param{name: name}
}

func TestBindRef(t *testing.T) {
	var result strings.Builder
	handler := func(p *param) {
		fmt.Fprintf(&result, "  handler(param): param.name_=%s", p.name)
	}

	var bound slot.Slot
	bound.Call()
	assert.Equal(t, "", result.String())

	func() {
		p := newParam("murrayc")
		defer p.Destroy()

		bound.Assign(bind.Bind(handler, bind.Last, bind.Ref(p)))

		result.WriteString("Calling slot when param exists:")
		bound.Call()
		assert.Equal(t, "Calling slot when param exists:  handler(param): param.name_=murrayc", result.String())
		result.Reset()
	}()

	result.WriteString("Calling slot when param does not exist:")
	bound.Call()
	assert.Equal(t, "Calling slot when param does not exist:", result.String())
	assert.False(t, bound.Valid())
}

// P1
func TestEmptySlot(t *testing.T) {
	var s slot.Slot
	assert.True(t, s.Valid())
	assert.True(t, s.Empty())
	assert.Nil(t, s.Call())
	assert.Nil(t, s.Call(1, "two"))

	var nilSlot *slot.Slot
	assert.True(t, nilSlot.Valid())
	assert.True(t, nilSlot.Empty())
	assert.Nil(t, nilSlot.Call())
	nilSlot.Close()
	nilSlot.Disconnect()

	assert.True(t, slot.New(nil).Empty())
}

// P2
func TestCallSeesLiveObject(t *testing.T) {
	p := newParam("a")
	defer p.Destroy()

	s := slot.New(bind.Bind(func(p *param, suffix string) string {
		p.name += suffix
		return p.name
	}, 0, bind.Ref(p)))
	defer s.Close()

	assert.Equal(t, []any{"ab"}, s.Call("b"))
	p.name = "x"
	assert.Equal(t, []any{"xy"}, s.Call("y"))
	assert.Equal(t, "xy", p.name)
	assert.Equal(t, 1, p.Pending())
}

// P3, P4
func TestDestroyInvalidates(t *testing.T) {
	p := newParam("a")
	calls := 0
	s := slot.New(bind.Bind(func(p *param) { calls++ }, 0, bind.Ref(p)))
	s.Call()
	require.Equal(t, 1, calls)

	p.Destroy()
	assert.False(t, s.Valid())
	assert.False(t, s.Empty() && s.Valid())
	for i := 0; i < 5; i++ {
		assert.Nil(t, s.Call())
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, p.Pending())
}

// P5: slot goes first
func TestCloseBeforeDestroy(t *testing.T) {
	p := newParam("a")
	s := slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	require.Equal(t, 1, p.Pending())

	s.Close()
	assert.Equal(t, 0, p.Pending())
	assert.True(t, s.Empty())
	assert.Nil(t, s.Call())

	assert.NotPanics(t, p.Destroy)
	s.Close()
}

// P5: object goes first
func TestDestroyBeforeClose(t *testing.T) {
	p := newParam("a")
	s := slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	p.Destroy()
	assert.NotPanics(t, func() {
		s.Close()
		s.Close()
	})
}

// P6
func TestDuplicateBinding(t *testing.T) {
	p := newParam("a")
	calls := 0
	s := slot.New(bind.BindLast(func(a, b *param) {
		assert.Same(t, a, b)
		calls++
	}, bind.Ref(p), bind.Ref(p)))
	require.Equal(t, 2, p.Pending())
	s.Call()

	invalidated := 0
	s.OnInvalidate(func() { invalidated++ })

	assert.NotPanics(t, p.Destroy)
	assert.False(t, s.Valid())
	assert.Equal(t, 1, invalidated)
	s.Call()
	s.Call()
	assert.Equal(t, 1, calls)
	assert.NotPanics(t, s.Close)
}

func TestAnyTrackedDependencyInvalidates(t *testing.T) {
	a, b := newParam("a"), newParam("b")
	defer a.Destroy()

	s := slot.New(bind.BindLast(func(a, b *param) {}, bind.Ref(a), bind.Ref(b)))
	require.Equal(t, 1, a.Pending())
	require.Equal(t, 1, b.Pending())

	b.Destroy()
	assert.False(t, s.Valid())
	// the surviving object no longer holds a hook into the slot
	assert.Equal(t, 0, a.Pending())
}

func TestPlainFuncIsNotTracked(t *testing.T) {
	calls := 0
	s := slot.New(func(n int) int {
		calls += n
		return calls
	})
	assert.Equal(t, []any{2}, s.Call(2))
	assert.True(t, s.Valid())
	assert.False(t, s.Empty())
}

func TestUntrackedRefIsPlain(t *testing.T) {
	n := 1
	s := slot.New(bind.Bind(func(n *int) { *n++ }, 0, bind.Ref(&n)))
	s.Call()
	s.Call()
	assert.Equal(t, 3, n)
	assert.True(t, s.Valid())
}

func TestPointerWithoutRefIsNotTracked(t *testing.T) {
	p := newParam("a")
	s := slot.New(bind.Bind(func(p *param) {}, 0, p))
	assert.Equal(t, 0, p.Pending())
	p.Destroy()
	assert.True(t, s.Valid())
}

func TestNewWithDestroyedObject(t *testing.T) {
	alive, dead := newParam("alive"), newParam("dead")
	dead.Destroy()

	s := slot.New(bind.BindLast(func(a, b *param) {
		t.Fatal("must not be called")
	}, bind.Ref(alive), bind.Ref(dead)))
	assert.False(t, s.Valid())
	assert.Nil(t, s.Call())
	assert.Equal(t, 0, alive.Pending())
}

func TestNestedBindsAreTracked(t *testing.T) {
	p := newParam("a")
	var f bind.Functor = bind.Fun(func(p *param, xs ...int) {})
	f = bind.BindLast(f, 1)
	f = bind.BindLast(f, 2)
	s := slot.New(bind.Bind(f, 0, bind.Ref(p)))
	assert.Equal(t, 1, p.Pending())
	p.Destroy()
	assert.False(t, s.Valid())
}

func TestMemFunTracksReceiver(t *testing.T) {
	p := newParam("murrayc")
	s := slot.New(bind.MemFun(p, (*param).rename))
	s.Call("gtkmm")
	assert.Equal(t, "gtkmm", p.name)

	p.Destroy()
	s.Call("gone")
	assert.Equal(t, "gtkmm", p.name)
}

func (p *param) rename(name string) {
	p.name = name
}

func TestAssignKeepsOldRepInvalid(t *testing.T) {
	p := newParam("a")
	var s slot.Slot
	s.Assign(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	p.Destroy()
	require.False(t, s.Valid())

	calls := 0
	s.Assign(func() { calls++ })
	assert.True(t, s.Valid())
	s.Call()
	assert.Equal(t, 1, calls)
}

func TestAssignDetachesPrevious(t *testing.T) {
	p := newParam("a")
	defer p.Destroy()
	s := slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	s.Assign(nil)
	assert.Equal(t, 0, p.Pending())
	assert.True(t, s.Empty())
}

func TestClone(t *testing.T) {
	p := newParam("a")
	calls := 0
	s := slot.New(bind.Bind(func(p *param) { calls++ }, 0, bind.Ref(p)))
	c := s.Clone()
	assert.Equal(t, 2, p.Pending())

	c.Close()
	assert.Equal(t, 1, p.Pending())
	s.Call()
	assert.Equal(t, 1, calls)

	c = s.Clone()
	p.Destroy()
	assert.False(t, s.Valid())
	assert.False(t, c.Valid())

	dead := s.Clone()
	assert.False(t, dead.Valid())
	assert.Nil(t, dead.Call())

	var empty slot.Slot
	assert.True(t, empty.Clone().Empty())
	assert.True(t, empty.Clone().Valid())
}

func TestDisconnect(t *testing.T) {
	p := newParam("a")
	defer p.Destroy()
	s := slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))

	fired := 0
	s.OnInvalidate(func() { fired++ })
	s.Disconnect()
	assert.False(t, s.Valid())
	assert.Equal(t, 0, p.Pending())
	assert.Equal(t, 1, fired)

	s.Disconnect()
	assert.Equal(t, 1, fired)

	late := false
	s.OnInvalidate(func() { late = true })
	assert.True(t, late)
}

func TestOnInvalidateNotFiredByClose(t *testing.T) {
	p := newParam("a")
	s := slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	fired := false
	s.OnInvalidate(func() { fired = true })
	s.Close()
	p.Destroy()
	assert.False(t, fired)

	s.OnInvalidate(func() { fired = true })
	assert.False(t, fired)
}

// destroying the object from inside the call leaves the slot inert afterwards
func TestDestroyDuringCall(t *testing.T) {
	p := newParam("a")
	calls := 0
	s := slot.New(bind.Bind(func(p *param) {
		calls++
		p.Destroy()
	}, 0, bind.Ref(p)))
	s.Call()
	s.Call()
	assert.Equal(t, 1, calls)
	assert.False(t, s.Valid())
}

// unkeyed lookups never reach the notifiers slots attach
func TestDetachNilKeyLeavesSlotTracked(t *testing.T) {
	p := newParam("a")
	s := slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	assert.False(t, p.DetachKeyed(nil))
	assert.Equal(t, 1, p.Pending())

	p.Destroy()
	assert.False(t, s.Valid())
}

func TestPanickingOnInvalidateStillInvalidatesAll(t *testing.T) {
	p := newParam("a")
	s1 := slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	s2 := slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	s1.OnInvalidate(func() { panic("s1") })
	s2.OnInvalidate(func() { panic("s2") })

	assert.Panics(t, p.Destroy)
	assert.False(t, s1.Valid())
	assert.False(t, s2.Valid())
	assert.True(t, p.Destroyed())
	assert.Equal(t, 0, p.Pending())
}

func TestManySlotsOneObject(t *testing.T) {
	p := newParam("a")
	slots := make([]*slot.Slot, 10)
	for i := range slots {
		slots[i] = slot.New(bind.Bind(func(p *param) {}, 0, bind.Ref(p)))
	}
	assert.Equal(t, 10, p.Pending())
	slots[3].Close()
	assert.Equal(t, 9, p.Pending())

	p.Destroy()
	for i, s := range slots {
		if i == 3 {
			assert.True(t, s.Valid())
			continue
		}
		assert.False(t, s.Valid())
	}
}
