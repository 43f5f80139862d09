package genai

// EventKind identifies a session lifecycle transition.
type EventKind string

const (
	// EventDownloading carries a download progress percentage.
	EventDownloading EventKind = "downloading"
	// EventReady fires when a session becomes usable.
	EventReady EventKind = "ready"
	// EventFailed fires when session creation fails.
	EventFailed EventKind = "failed"
	// EventTimeout fires when creation exceeds the soft deadline.
	// Creation keeps running; this is advisory only.
	EventTimeout EventKind = "timeout"
)

// Event is a session lifecycle notification published to subscribers.
type Event struct {
	Kind     EventKind
	Progress float64 // percentage, only for EventDownloading
	Err      error   // only for EventFailed
}

// Subscribe registers an observer for lifecycle events. The returned channel
// is buffered; events are dropped rather than blocking the session path if
// the observer falls behind.
func (m *Manager) Subscribe() <-chan Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Event, 16)
	m.subs = append(m.subs, ch)
	return ch
}

func (m *Manager) publish(e Event) {
	m.mu.Lock()
	subs := make([]chan Event, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
		}
	}
}
