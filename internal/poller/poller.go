// Package poller re-fetches a row source on a fixed interval and applies the
// result only when the content actually changed, so no-op polls never disturb
// the caller's rendered state.
package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"leadlens/api/internal/sheet"
)

// DefaultInterval is the poll period when none is configured.
const DefaultInterval = 15 * time.Second

// ErrAlreadyStarted is returned by Start on a running poller.
var ErrAlreadyStarted = errors.New("poller already started")

// State is the poll cycle phase. Cycles run strictly one at a time:
// Idle -> Fetching -> (Unchanged | Applying) -> Idle.
type State string

const (
	StateIdle      State = "idle"
	StateFetching  State = "fetching"
	StateApplying  State = "applying"
	StateSuspended State = "suspended"
)

// FetchFunc reads the authoritative rows.
type FetchFunc func(ctx context.Context) ([][]string, error)

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the poll period.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithOnApply sets the callback invoked with changed rows.
func WithOnApply(fn func(rows [][]string)) Option {
	return func(p *Poller) { p.onApply = fn }
}

// WithOnError sets the callback invoked on fetch failures.
func WithOnError(fn func(error)) Option {
	return func(p *Poller) { p.onError = fn }
}

// WithEditGate supplies the editing check. While it reports true the poller
// skips the fetch entirely: an in-progress edit must never be clobbered, and
// skipping the network call avoids both the wasted request and the race.
func WithEditGate(fn func() bool) Option {
	return func(p *Poller) { p.editing = fn }
}

// Poller drives sequential poll cycles against one row source.
type Poller struct {
	fetch    FetchFunc
	interval time.Duration
	onApply  func([][]string)
	onError  func(error)
	editing  func() bool

	mu           sync.Mutex
	state        State
	lastSnapshot []byte
	started      bool
	cancel       context.CancelFunc
}

// New creates a poller for the given fetch function.
func New(fetch FetchFunc, opts ...Option) *Poller {
	p := &Poller{
		fetch:    fetch,
		interval: DefaultInterval,
		onApply:  func([][]string) {},
		onError:  func(error) {},
		editing:  func() bool { return false },
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Snapshot serializes rows deterministically for byte-level comparison.
func Snapshot(rows [][]string) []byte {
	data, _ := json.Marshal(rows)
	return data
}

// Seed records the rows the caller already holds, so the first scheduled poll
// only re-applies on a real change.
func (p *Poller) Seed(rows [][]string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSnapshot = Snapshot(rows)
}

// Start launches the polling loop.
func (p *Poller) Start() error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.started = true
	p.mu.Unlock()

	go p.loop(ctx)
	return nil
}

// Stop halts the polling loop.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.cancel()
	p.started = false
}

// State returns the current cycle phase.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Resume clears a fatal suspension so the next tick fetches again. The user
// explicitly restarting the source is the only way out of suspension.
func (p *Poller) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateSuspended {
		p.state = StateIdle
	}
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll runs one cycle synchronously. It no-ops while a previous cycle is
// unresolved, while the poller is suspended, or while an edit session is
// open.
func (p *Poller) Poll(ctx context.Context) {
	if p.editing() {
		return
	}

	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return
	}
	p.state = StateFetching
	p.mu.Unlock()

	rows, err := p.fetch(ctx)
	if err != nil {
		p.mu.Lock()
		if sheet.Fatal(err) {
			p.state = StateSuspended
		} else {
			p.state = StateIdle
		}
		p.mu.Unlock()
		p.onError(err)
		return
	}

	snapshot := Snapshot(rows)

	p.mu.Lock()
	if bytes.Equal(snapshot, p.lastSnapshot) {
		p.state = StateIdle
		p.mu.Unlock()
		return
	}
	p.lastSnapshot = snapshot
	p.state = StateApplying
	p.mu.Unlock()

	p.onApply(rows)

	p.mu.Lock()
	p.state = StateIdle
	p.mu.Unlock()
}
