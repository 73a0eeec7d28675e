package events

// Publisher delivers domain events to downstream consumers
// (notifications, audit). Publish is fire-and-forget: a failing
// consumer must never fail the booking operation that emitted the
// event.
type Publisher interface {
	Publish(event Event)
}

// Logger is the logging surface needed by LogPublisher.
type Logger interface {
	Info(format string, v ...interface{})
}

// LogPublisher writes every event to the service log. It stands in
// for a broker until one is attached; the log line carries the event
// id so consumers replaying the log can dedupe.
type LogPublisher struct {
	log Logger
}

func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(event Event) {
	p.log.Info("event %s id=%s occurred_at=%s payload=%+v",
		event.EventName(), event.EventID(), event.OccurredAt().Format("2006-01-02T15:04:05Z07:00"), event)
}
