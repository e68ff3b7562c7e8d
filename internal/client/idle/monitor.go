// Package idle tracks user inactivity and drives automatic logout.
//
// The monitor is a small state machine: Active waits for the inactivity
// timeout, Idle counts down second by second until either the user
// continues the session or the countdown expires. Exactly one wake-up is
// scheduled at any moment; every transition re-arms it, and a generation
// counter fences callbacks from timers that were cancelled concurrently.
//
// State machine:
//
//	Active --(timeout)--> Idle(countdown=N) --(N ticks)--> expired (OnExpire, Stopped)
//	Idle   --(Continue)--> Active
//	any    --(Stop)------> Stopped
package idle

import (
	"sync"
	"time"
)

type State int

const (
	StateStopped State = iota
	StateActive
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateIdle:
		return "idle"
	default:
		return "stopped"
	}
}

// Callbacks are invoked outside the monitor's lock, so they may call back
// into the monitor (e.g. OnExpire triggering a logout that calls Stop).
// Nil callbacks are skipped.
type Callbacks struct {
	// OnIdle fires when the inactivity timeout elapses; countdown is the
	// number of seconds left before forced logout.
	OnIdle func(countdown int)
	// OnTick fires on every countdown decrement while idle.
	OnTick func(countdown int)
	// OnExpire fires when the countdown reaches zero. The monitor is
	// already Stopped when it runs.
	OnExpire func()
}

// Monitor enforces the idle timeout for one session. Safe for concurrent use.
type Monitor struct {
	mu        sync.Mutex
	state     State
	countdown int
	gen       uint64
	timer     *time.Timer

	timeout  time.Duration
	warnSecs int
	tick     time.Duration
	cb       Callbacks
}

func NewMonitor(timeout time.Duration, warnSeconds int, cb Callbacks) *Monitor {
	return &Monitor{
		timeout:  timeout,
		warnSecs: warnSeconds,
		tick:     time.Second,
		cb:       cb,
	}
}

// Start arms the inactivity timer. No-op unless the monitor is Stopped.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateStopped {
		return
	}
	m.state = StateActive
	m.arm(m.timeout)
}

// Stop cancels any pending wake-up from any state.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disarm()
	m.state = StateStopped
	m.countdown = 0
}

// Touch records user activity. While Active it re-arms the inactivity
// timer; in any other state it does nothing. Activity alone does not leave
// the Idle state: that requires an explicit Continue.
func (m *Monitor) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateActive {
		return
	}
	m.arm(m.timeout)
}

// Continue cancels the countdown and returns to Active. No-op unless Idle.
func (m *Monitor) Continue() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return
	}
	m.state = StateActive
	m.countdown = 0
	m.arm(m.timeout)
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Monitor) Countdown() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countdown
}

// arm schedules the single wake-up. Callers must hold m.mu. Bumping gen
// invalidates any previously scheduled callback that may already be
// running and waiting for the lock.
func (m *Monitor) arm(d time.Duration) {
	m.gen++
	gen := m.gen
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(d, func() { m.fire(gen) })
}

func (m *Monitor) disarm() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Monitor) fire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}

	switch m.state {
	case StateActive:
		m.state = StateIdle
		m.countdown = m.warnSecs
		m.arm(m.tick)
		cb := m.cb.OnIdle
		n := m.countdown
		m.mu.Unlock()
		if cb != nil {
			cb(n)
		}

	case StateIdle:
		m.countdown--
		if m.countdown > 0 {
			m.arm(m.tick)
			cb := m.cb.OnTick
			n := m.countdown
			m.mu.Unlock()
			if cb != nil {
				cb(n)
			}
			return
		}
		m.disarm()
		m.state = StateStopped
		m.countdown = 0
		cb := m.cb.OnExpire
		m.mu.Unlock()
		if cb != nil {
			cb()
		}

	default:
		m.mu.Unlock()
	}
}
