package genai

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	defaultSoftTimeout  = 30 * time.Second
	defaultPollInterval = 5 * time.Second

	// DefaultPollBudget is the wall-clock budget for PollForAvailability.
	DefaultPollBudget = 5 * time.Minute
)

// PollResult is the outcome of waiting for the model to become available.
type PollResult struct {
	Available bool
	Status    string // "ready", "unavailable", "timeout"
	Message   string
}

// Manager owns at most one model session and guarantees at most one
// initialization in flight: concurrent callers share the in-flight outcome
// instead of issuing redundant creation calls (and duplicate downloads).
type Manager struct {
	runtime      Runtime
	opts         Options
	activation   func() bool
	softTimeout  time.Duration
	pollInterval time.Duration

	mu           sync.Mutex
	session      Session
	initializing bool
	inflight     chan struct{}
	inflightErr  error
	progress     float64
	subs         []chan Event
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithActivationCheck sets the user-presence precondition verified before a
// session creation may trigger a download.
func WithActivationCheck(check func() bool) ManagerOption {
	return func(m *Manager) { m.activation = check }
}

// WithSoftTimeout overrides the advisory creation deadline.
func WithSoftTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) { m.softTimeout = d }
}

// WithPollInterval overrides the availability polling interval.
func WithPollInterval(d time.Duration) ManagerOption {
	return func(m *Manager) { m.pollInterval = d }
}

// NewManager creates a session manager over the given runtime. The option
// set is fixed for the manager's lifetime: availability probes and creation
// must use identical options, since backends key decisions off them.
func NewManager(runtime Runtime, opts Options, mopts ...ManagerOption) *Manager {
	m := &Manager{
		runtime:      runtime,
		opts:         opts,
		activation:   func() bool { return true },
		softTimeout:  defaultSoftTimeout,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range mopts {
		opt(m)
	}
	return m
}

// CheckAvailability probes the runtime with the manager's fixed options.
// Probe failures are reported as AvailabilityNo, never as an error.
func (m *Manager) CheckAvailability(ctx context.Context) Availability {
	avail, err := m.runtime.Availability(ctx, m.opts)
	if err != nil {
		return AvailabilityNo
	}
	return avail
}

// InitSession returns the existing session, the outcome of an in-flight
// initialization, or a freshly created session. Creation publishes download
// progress to subscribers and emits an advisory timeout notification after
// the soft deadline; the creation call itself is never aborted by it.
func (m *Manager) InitSession(ctx context.Context) (Session, error) {
	m.mu.Lock()
	if m.session != nil {
		s := m.session
		m.mu.Unlock()
		return s, nil
	}

	if m.initializing {
		// Another caller is already creating; share its outcome.
		done := m.inflight
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-done:
		}

		m.mu.Lock()
		s, err := m.session, m.inflightErr
		m.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	m.initializing = true
	m.inflight = make(chan struct{})
	m.progress = 0
	done := m.inflight
	m.mu.Unlock()

	sess, err := m.create(ctx)

	// The guard is released on every exit path, success or failure.
	m.mu.Lock()
	if err != nil {
		m.session = nil
		m.inflightErr = err
	} else {
		m.session = sess
		m.inflightErr = nil
	}
	m.initializing = false
	close(done)
	m.mu.Unlock()

	if err != nil {
		m.publish(Event{Kind: EventFailed, Err: err})
		return nil, err
	}
	m.publish(Event{Kind: EventReady})
	return sess, nil
}

func (m *Manager) create(ctx context.Context) (Session, error) {
	if m.activation != nil && !m.activation() {
		return nil, ErrActivationRequired
	}

	timer := time.AfterFunc(m.softTimeout, func() {
		m.publish(Event{Kind: EventTimeout})
	})
	defer timer.Stop()

	return m.runtime.Create(ctx, m.opts, func(pct float64) {
		m.mu.Lock()
		m.progress = pct
		m.mu.Unlock()
		m.publish(Event{Kind: EventDownloading, Progress: pct})
	})
}

// PollForAvailability probes the runtime every poll interval until it is
// readily available, definitively unavailable, or the wall-clock budget is
// exhausted. Transient probe errors are swallowed and retried; the hard
// deadline stops polling but not any outstanding creation call.
func (m *Manager) PollForAvailability(ctx context.Context, maxWait time.Duration) PollResult {
	if maxWait <= 0 {
		maxWait = DefaultPollBudget
	}
	start := time.Now()

	for time.Since(start) < maxWait {
		avail, err := m.runtime.Availability(ctx, m.opts)
		if err == nil {
			switch avail {
			case AvailabilityReadily:
				m.publish(Event{Kind: EventReady})
				return PollResult{
					Available: true,
					Status:    "ready",
					Message:   "AI model is ready to use",
				}
			case AvailabilityNo:
				return PollResult{
					Available: false,
					Status:    "unavailable",
					Message:   "AI model not supported on this device",
				}
			}
		}

		select {
		case <-ctx.Done():
			return PollResult{
				Available: false,
				Status:    "timeout",
				Message:   "Model availability wait canceled",
			}
		case <-time.After(m.pollInterval):
		}
	}

	return PollResult{
		Available: false,
		Status:    "timeout",
		Message:   "Model download timed out; the download may still be running",
	}
}

// DestroySession releases the current session, if any. Release errors are
// logged, not propagated; the handle is cleared regardless.
func (m *Manager) DestroySession() {
	m.mu.Lock()
	s := m.session
	m.session = nil
	m.mu.Unlock()

	if s == nil {
		return
	}
	if err := s.Destroy(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: destroying session: %v\n", err)
	}
}

// DownloadProgress returns the last observed download percentage.
func (m *Manager) DownloadProgress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

// HasSession reports whether a session currently exists.
func (m *Manager) HasSession() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// Options returns the manager's fixed option set.
func (m *Manager) Options() Options {
	return m.opts
}
