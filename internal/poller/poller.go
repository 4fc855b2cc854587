package poller

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Refresher is the dependency that actually does the work.
// The poller will call Refresh on a fixed interval to keep the
// verified-number snapshot warm.
type Refresher interface {
	Refresh(ctx context.Context) []string
}

// PollerService exposes a small control surface for the background poller.
// Start/Stop are synchronous controls, and IsRunning reports
// whether the poller is currently accepting ticks.
type PollerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

// DefaultInterval is used when no custom interval is provided. It matches
// the cache's freshness window so every tick lands on a stale snapshot.
const DefaultInterval = 5 * time.Minute

// DefaultRefreshTimeout is how long we allow a single refresh to run
// before cancelling it via context timeout.
const DefaultRefreshTimeout = 30 * time.Second

// controlTimeout is how long we wait for the control loop to
// accept a Start/Stop command and acknowledge it. This protects
// callers from hanging forever if the loop is not running.
const controlTimeout = 2 * time.Second

// controlOp represents the kind of command sent into the internal control loop.
type controlOp int

const (
	opStart controlOp = iota
	opStop
	opStatus
)

// controlMsg is sent over the ctrl channel to drive the poller's state.
type controlMsg struct {
	op   controlOp
	resp chan bool // used by callers to get a synchronous answer
}

// pollerService owns the internal state and runs the control loop.
// All mutable state lives in the loop goroutine, so we don't need locks.
type pollerService struct {
	refresher      Refresher
	interval       time.Duration
	refreshTimeout time.Duration
	ctrl           chan controlMsg
}

// NewPollerService creates a new poller with the given interval and refresh
// timeout. If any of them is <= 0, sane defaults are used instead.
func NewPollerService(
	refresher Refresher,
	interval time.Duration,
	refreshTimeout time.Duration,
) PollerService {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if refreshTimeout <= 0 {
		refreshTimeout = DefaultRefreshTimeout
	}

	p := &pollerService{
		refresher:      refresher,
		interval:       interval,
		refreshTimeout: refreshTimeout,
		ctrl:           make(chan controlMsg),
	}

	// The control loop is started in its own goroutine and lives
	// for the lifetime of the process.
	go p.loop()

	return p
}

// Start tells the poller to begin refreshing on ticks.
// It blocks until the internal loop has acknowledged the state change,
// or returns an error if the control loop does not respond in time.
func (p *pollerService) Start() error {
	resp := make(chan bool)
	msg := controlMsg{op: opStart, resp: resp}

	// First: make sure the control loop is actually listening
	// on the ctrl channel.
	select {
	case p.ctrl <- msg:
		// sent ok
	case <-time.After(controlTimeout):
		return fmt.Errorf("[Poller] Start: control loop not responding")
	}

	// Then: wait for the loop to acknowledge the state change.
	select {
	case <-resp:
		return nil
	case <-time.After(controlTimeout):
		return fmt.Errorf("[Poller] Start: acknowledgement timeout")
	}
}

// Stop tells the poller to stop accepting new ticks.
// If a refresh is currently running, Stop will wait until it
// finishes (or times out) before returning. If the control loop does
// not respond, Stop returns an error instead of blocking forever.
func (p *pollerService) Stop() error {
	resp := make(chan bool)
	msg := controlMsg{op: opStop, resp: resp}

	// Try to send the Stop command to the control loop.
	select {
	case p.ctrl <- msg:
		// sent ok
	case <-time.After(controlTimeout):
		return fmt.Errorf("[Poller] Stop: control loop not responding")
	}

	// Wait for the loop to confirm that it has stopped.
	select {
	case <-resp:
		return nil
	case <-time.After(controlTimeout):
		return fmt.Errorf("[Poller] Stop: acknowledgement timeout")
	}
}

// IsRunning reports whether the poller is currently in "running" mode.
// It does not mean that a refresh is actively executing, only that new
// ticks will be processed when the timer fires.
func (p *pollerService) IsRunning() bool {
	resp := make(chan bool)
	p.ctrl <- controlMsg{op: opStatus, resp: resp}
	return <-resp
}

// loop is the heart of the poller. It owns all mutable state
// and reacts to either control messages or timer ticks.
func (p *pollerService) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// running: whether we should accept new ticks
	// inRefresh: whether a refresh is currently executing
	running := false
	inRefresh := false

	// pendingStop is a response channel to be completed once
	// the current refresh finishes, if Stop was called mid-refresh.
	var pendingStop chan bool

	for {
		select {
		case msg := <-p.ctrl:
			switch msg.op {
			case opStart:
				if !running {
					log.Printf("[Poller] Started (interval=%s, refreshTimeout=%s)\n",
						p.interval, p.refreshTimeout)
				}
				running = true
				msg.resp <- true

			case opStop:
				// If we're already idle and not refreshing,
				// just acknowledge the Stop immediately.
				if !running && !inRefresh {
					log.Println("[Poller] Stop requested, but already idle.")
					msg.resp <- true
					continue
				}

				log.Println("[Poller] Stop requested. Waiting for current refresh (if any)...")

				// Mark as not running so future ticks are ignored.
				running = false

				if inRefresh {
					// Defer the response until the refresh completes.
					pendingStop = msg.resp
				} else {
					// No active refresh, we can safely stop now.
					msg.resp <- true
				}

			case opStatus:
				msg.resp <- running
			}

		case <-ticker.C:
			// If we're not running or already refreshing, ignore this tick.
			if !running || inRefresh {
				continue
			}

			inRefresh = true

			// Time-bound the refresh so Stop doesn't hang forever
			// if the lookup never returns.
			ctx, cancel := context.WithTimeout(context.Background(), p.refreshTimeout)

			numbers := p.refresher.Refresh(ctx)
			cancel()

			log.Printf("[Poller] Refresh completed, %d verified numbers.", len(numbers))

			inRefresh = false

			// If a Stop was requested while we were refreshing,
			// complete it now and clear the pending channel.
			if pendingStop != nil {
				pendingStop <- true
				pendingStop = nil
				log.Println("[Poller] Stopped (no active refresh).")
			}
		}
	}
}
