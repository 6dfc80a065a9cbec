package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcquireRelease(t *testing.T) {
	b := NewBus()
	var got []Event

	release := b.Acquire(PointerRelease, func(ev Event) { got = append(got, ev) })
	assert.Equal(t, 1, b.Active(PointerRelease))
	assert.Equal(t, 0, b.Active(Cancel))

	assert.Equal(t, 1, b.Dispatch(Event{Kind: PointerRelease, X: 0.5}))
	assert.Equal(t, 0, b.Dispatch(Event{Kind: Cancel}))
	assert.Len(t, got, 1)

	release()
	release()
	assert.Equal(t, 0, b.Active(PointerRelease))
	assert.Equal(t, 0, b.Dispatch(Event{Kind: PointerRelease}))
	assert.Len(t, got, 1)
}

func TestReleaseInsideListener(t *testing.T) {
	b := NewBus()
	calls := 0

	var release func()
	release = b.Acquire(Cancel, func(Event) {
		calls++
		release()
	})
	other := 0
	b.Acquire(Cancel, func(Event) { other++ })

	assert.Equal(t, 2, b.Dispatch(Event{Kind: Cancel}))
	assert.Equal(t, 1, b.Dispatch(Event{Kind: Cancel}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestReleaseOtherInsideListener(t *testing.T) {
	b := NewBus()
	var order []string

	var releaseSecond func()
	b.Acquire(PointerRelease, func(Event) {
		order = append(order, "first")
		releaseSecond()
	})
	releaseSecond = b.Acquire(PointerRelease, func(Event) { order = append(order, "second") })
	b.Acquire(PointerRelease, func(Event) { order = append(order, "third") })

	assert.Equal(t, 2, b.Dispatch(Event{Kind: PointerRelease}))
	assert.Equal(t, []string{"first", "third"}, order)
	assert.Equal(t, 2, b.Active(PointerRelease))
}

func TestAcquireInsideListenerWaits(t *testing.T) {
	b := NewBus()
	late := 0
	b.Acquire(Cancel, func(Event) {
		b.Acquire(Cancel, func(Event) { late++ })
	})

	assert.Equal(t, 1, b.Dispatch(Event{Kind: Cancel}))
	assert.Equal(t, 0, late)
	assert.Equal(t, 2, b.Active(Cancel))
}

func TestReleaseKeepsOthers(t *testing.T) {
	b := NewBus()
	var order []string
	r1 := b.Acquire(PointerRelease, func(Event) { order = append(order, "one") })
	b.Acquire(PointerRelease, func(Event) { order = append(order, "two") })
	b.Acquire(PointerRelease, func(Event) { order = append(order, "three") })

	r1()
	b.Dispatch(Event{Kind: PointerRelease})
	assert.Equal(t, []string{"two", "three"}, order)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pointer-release", PointerRelease.String())
	assert.Equal(t, "cancel", Cancel.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
