// Package timer provides an arena of keyed timers advanced by simulation
// time. Every timer belongs to exactly one key; scheduling a key that is
// already pending cancels the old entry first, so a key never has more than
// one live timer. Callbacks run synchronously inside Advance on the caller's
// goroutine.
package timer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type entry struct {
	key      string
	seq      uint64 // Scheduling order, breaks deadline ties
	deadline time.Duration
	interval time.Duration // zero for one-shot entries
	fn       func()
}

// Arena holds the live timers. The zero value is not usable; use NewArena.
type Arena struct {
	now     time.Duration
	next    uint64
	entries map[string]*entry
}

func NewArena() *Arena {
	return &Arena{
		entries: make(map[string]*entry),
	}
}

// RespawnKey returns the arena key of a player's respawn timer.
func RespawnKey[ID ~int32](playerID ID) string {
	return fmt.Sprintf("%s%d", RespawnPrefix, playerID)
}

const (
	RespawnPrefix = "respawn/"
	CountdownKey  = "countdown"
)

// After schedules fn once, d from now, replacing any pending timer for key.
func (a *Arena) After(key string, d time.Duration, fn func()) {
	a.schedule(key, d, 0, fn)
}

// Every schedules fn every d, replacing any pending timer for key. The
// first call happens d from now.
func (a *Arena) Every(key string, d time.Duration, fn func()) {
	if d <= 0 {
		panic("timer: non-positive interval")
	}
	a.schedule(key, d, d, fn)
}

func (a *Arena) schedule(key string, d, interval time.Duration, fn func()) {
	a.Cancel(key)
	if d < 0 {
		d = 0
	}
	a.next++
	a.entries[key] = &entry{
		key:      key,
		seq:      a.next,
		deadline: a.now + d,
		interval: interval,
		fn:       fn,
	}
}

// Cancel removes the pending timer for key. It reports whether one existed.
func (a *Arena) Cancel(key string) bool {
	if _, ok := a.entries[key]; !ok {
		return false
	}
	delete(a.entries, key)
	return true
}

// CancelPrefix removes every pending timer whose key starts with prefix and
// returns how many were removed.
func (a *Arena) CancelPrefix(prefix string) int {
	n := 0
	for key := range a.entries {
		if strings.HasPrefix(key, prefix) {
			delete(a.entries, key)
			n++
		}
	}
	return n
}

// Pending reports whether key has a live timer.
func (a *Arena) Pending(key string) bool {
	_, ok := a.entries[key]
	return ok
}

// Remaining returns the time left before key fires.
func (a *Arena) Remaining(key string) (time.Duration, bool) {
	e, ok := a.entries[key]
	if !ok {
		return 0, false
	}
	return e.deadline - a.now, true
}

// Count returns the number of live timers whose key starts with prefix.
func (a *Arena) Count(prefix string) int {
	n := 0
	for key := range a.entries {
		if strings.HasPrefix(key, prefix) {
			n++
		}
	}
	return n
}

// Len returns the number of live timers.
func (a *Arena) Len() int {
	return len(a.entries)
}

// Now returns the arena's simulation clock.
func (a *Arena) Now() time.Duration {
	return a.now
}

// Advance moves the clock forward by dt, firing due timers in deadline
// order. Callbacks may schedule or cancel timers; a timer scheduled by a
// callback fires in the same Advance if its deadline is already due.
func (a *Arena) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := a.now + dt
	for {
		e := a.nextDue(target)
		if e == nil {
			break
		}
		a.now = e.deadline
		if e.interval > 0 {
			e.deadline += e.interval
		} else {
			delete(a.entries, e.key)
		}
		e.fn()
	}
	a.now = target
}

func (a *Arena) nextDue(target time.Duration) *entry {
	var due []*entry
	for _, e := range a.entries {
		if e.deadline <= target {
			due = append(due, e)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}
