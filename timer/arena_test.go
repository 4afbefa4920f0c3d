package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresOnce(t *testing.T) {
	a := NewArena()
	fired := 0
	a.After("x", time.Second, func() { fired++ })

	a.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, fired)

	a.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.False(t, a.Pending("x"))

	a.Advance(10 * time.Second)
	assert.Equal(t, 1, fired)
}

func TestRescheduleReplacesPendingTimer(t *testing.T) {
	a := NewArena()
	var firedAt []time.Duration
	schedule := func() {
		a.After(RespawnKey(int32(2)), 3*time.Second, func() { firedAt = append(firedAt, a.Now()) })
	}

	schedule()
	a.Advance(time.Second)
	schedule()
	assert.Equal(t, 1, a.Count(RespawnPrefix))

	left, ok := a.Remaining(RespawnKey(int32(2)))
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, left)

	a.Advance(2 * time.Second)
	assert.Empty(t, firedAt)

	a.Advance(time.Second)
	assert.Equal(t, []time.Duration{4 * time.Second}, firedAt)
}

func TestEveryCatchesUpInOrder(t *testing.T) {
	a := NewArena()
	var ticks []time.Duration
	a.Every(CountdownKey, time.Second, func() { ticks = append(ticks, a.Now()) })

	a.Advance(3500 * time.Millisecond)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, ticks)
}

func TestCallbackCanCancelItself(t *testing.T) {
	a := NewArena()
	n := 0
	a.Every(CountdownKey, time.Second, func() {
		n++
		if n == 2 {
			a.Cancel(CountdownKey)
		}
	})

	a.Advance(10 * time.Second)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, a.Len())
}

func TestCancelPrefixLeavesOtherKeys(t *testing.T) {
	a := NewArena()
	fired := map[string]bool{}
	for _, key := range []string{RespawnKey(int32(1)), RespawnKey(int32(2)), CountdownKey} {
		k := key
		a.After(k, time.Second, func() { fired[k] = true })
	}

	assert.Equal(t, 2, a.CancelPrefix(RespawnPrefix))
	a.Advance(time.Second)

	assert.Equal(t, map[string]bool{CountdownKey: true}, fired)
}

func TestOrderByDeadlineThenSchedule(t *testing.T) {
	a := NewArena()
	var order []string
	a.After("b", 2*time.Second, func() { order = append(order, "b") })
	a.After("a", time.Second, func() { order = append(order, "a") })
	a.After("c", time.Second, func() { order = append(order, "c") })

	a.Advance(5 * time.Second)
	assert.Equal(t, []string{"a", "c", "b"}, order)
}
