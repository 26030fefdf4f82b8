package shared

// Recorder collects events produced while executing a use case so they can
// be published in one batch after commit.
type Recorder struct {
	events []DomainEvent
}

func (r *Recorder) Record(ev DomainEvent) {
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []DomainEvent {
	return r.events
}

func (r *Recorder) Clear() {
	r.events = nil
}
