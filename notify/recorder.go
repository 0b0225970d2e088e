package notify

import "sync"

// Recorder keeps published events in memory. Used by tests.
type Recorder struct {
	mu     sync.Mutex
	Events []Message
}

func (r *Recorder) Publish(event string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Message{Event: event, Data: data})
}

// Names returns the event names in publish order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.Events))
	for i, m := range r.Events {
		names[i] = m.Event
	}
	return names
}
