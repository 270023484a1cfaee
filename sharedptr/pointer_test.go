package sharedptr_test

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/sharedptr"
)

// counter returns a strategy recording how often each value was disposed.
func counter[T comparable](t *testing.T) (api.Deleter[T], map[T]int) {
	t.Helper()
	seen := make(map[T]int)
	return api.DeleterFunc[T](func(p *T) { seen[*p]++ }), seen
}

func TestPointerSize(t *testing.T) {
	var word uintptr
	require.Equal(t, 2*unsafe.Sizeof(word), unsafe.Sizeof(sharedptr.Pointer[int]{}))
	require.Equal(t, 2*unsafe.Sizeof(word), unsafe.Sizeof(sharedptr.Pointer[[64]byte]{}))
}

// go vet's copylocks check relies on a zero-size Locker field; a by-value
// copy would be an owner the count never saw.
func TestPointerCarriesCopyGuard(t *testing.T) {
	typ := reflect.TypeOf(sharedptr.Pointer[int]{})
	guard := typ.Field(0)
	require.Zero(t, guard.Type.Size())

	locker := reflect.TypeOf((*interface{ Lock(); Unlock() })(nil)).Elem()
	require.True(t, reflect.PointerTo(guard.Type).Implements(locker))
}

func TestEmptyPointer(t *testing.T) {
	var p sharedptr.Pointer[int]
	require.Nil(t, p.Get())
	require.Zero(t, p.Count())
	require.False(t, p.Valid())
	require.NoError(t, p.Close())

	q := sharedptr.New[int](nil)
	require.Zero(t, q.Count())

	c := q.Clone()
	require.Zero(t, c.Count())
	require.False(t, c.Valid())
}

func TestCopySemantics(t *testing.T) {
	v := 'O'
	a := sharedptr.New(&v)
	require.Equal(t, 1, a.Count())
	require.True(t, a.Unique())

	b := a.Clone()
	require.Equal(t, a.Count(), b.Count())
	require.Equal(t, 2, b.Count())
	require.Equal(t, a.Value(), b.Value())

	var c sharedptr.Pointer[rune]
	c.Assign(&b)
	require.Equal(t, 3, c.Count())
	require.Equal(t, b.Count(), c.Count())
	require.Equal(t, 'O', c.Value())
	require.Same(t, a.Get(), c.Get())
}

func TestCopyThenMoveScenario(t *testing.T) {
	v := 25
	orig := sharedptr.New(&v)
	require.Equal(t, 1, orig.Count())

	c1 := orig.Clone()
	require.Equal(t, 2, orig.Count())
	c2 := orig.Clone()
	require.Equal(t, 3, orig.Count())

	moved := orig.Move()
	require.Equal(t, 3, moved.Count())
	require.Nil(t, orig.Get())
	require.Zero(t, orig.Count())
	require.Equal(t, 3, c1.Count())
	require.Equal(t, 25, c2.Value())
}

func TestMoveSemantics(t *testing.T) {
	v := 25
	a := sharedptr.New(&v)

	b := a.Move()
	require.Equal(t, 1, b.Count())

	var c sharedptr.Pointer[int]
	c.MoveAssign(&b)
	require.Equal(t, 1, c.Count())
	require.Equal(t, 25, c.Value())

	require.Nil(t, a.Get())
	require.Nil(t, b.Get())

	c.MoveAssign(&c)
	require.Equal(t, 25, c.Value(), "self-move must keep ownership")
	require.Equal(t, 1, c.Count())
}

func TestResetLeavesAliasesIntact(t *testing.T) {
	del, seen := counter[float64](t)
	v := 25.082004
	a := sharedptr.NewWith(&v, del)
	b := a.Clone()
	require.Equal(t, 2, b.Count())

	nv := 99.95
	a.Reset(&nv)
	require.Equal(t, 99.95, a.Value())
	require.Equal(t, 1, a.Count())

	require.Equal(t, 25.082004, b.Value())
	require.Equal(t, 1, b.Count())
	require.Empty(t, seen, "value still owned by b")

	require.NoError(t, b.Close())
	require.Equal(t, 1, seen[25.082004])
	require.Zero(t, b.Count())
}

func TestDisposedExactlyOnceAtLastOwner(t *testing.T) {
	del, seen := counter[int](t)
	v := 7
	a := sharedptr.NewWith(&v, del)
	owners := []sharedptr.Pointer[int]{a.Clone(), a.Clone(), a.Clone()}
	require.Equal(t, 4, a.Count())

	for i := range owners {
		require.NoError(t, owners[i].Close())
		require.Empty(t, seen)
	}
	require.Equal(t, 1, a.Count())

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
	require.Equal(t, map[int]int{7: 1}, seen)
}

func TestAssignReleasesPreviousValue(t *testing.T) {
	del, seen := counter[string](t)
	x, y := "x", "y"
	a := sharedptr.NewWith(&x, del)
	b := sharedptr.NewWith(&y, del)

	a.Assign(&b)
	require.Equal(t, 1, seen["x"])
	require.Equal(t, 2, b.Count())
	require.Equal(t, "y", a.Value())

	// Assigning between owners of the same value keeps the count stable.
	a.Assign(&b)
	require.Equal(t, 2, a.Count())
	a.Assign(&a)
	require.Equal(t, 2, a.Count())
	require.Zero(t, seen["y"])

	var empty sharedptr.Pointer[string]
	a.MoveAssign(&empty)
	require.Equal(t, 1, b.Count())
	require.False(t, a.Valid())
}

func TestMoveAssignBetweenAliases(t *testing.T) {
	del, seen := counter[int](t)
	v := 3
	a := sharedptr.NewWith(&v, del)
	b := a.Clone()

	a.MoveAssign(&b)
	require.Equal(t, 1, a.Count())
	require.False(t, b.Valid())
	require.Empty(t, seen)
}

func TestDefaultDeleterZeroesValue(t *testing.T) {
	v := 11
	p := sharedptr.New(&v)
	p.ResetWith(nil, nil)
	require.Zero(t, v)
	require.False(t, p.Valid())
}

func TestResetToHeldValueKeepsOwnership(t *testing.T) {
	del, seen := counter[int](t)
	v := 42
	p := sharedptr.NewWith(&v, del)

	p.Reset(p.Get())
	require.Empty(t, seen)
	require.True(t, p.Valid())
	require.Equal(t, 1, p.Count())
	require.Equal(t, 42, p.Value())

	q := p.Clone()
	q.ResetWith(q.Get(), nil)
	require.Equal(t, 2, p.Count())
	require.Empty(t, seen)

	require.NoError(t, q.Close())
	require.NoError(t, p.Close())
	require.Equal(t, map[int]int{42: 1}, seen)
}
