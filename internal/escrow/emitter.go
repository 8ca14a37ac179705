package escrow

import "github.com/guttosm/tradepool/internal/logger"

// LogEmitter writes every event to the structured log. Useful on its own in
// tests and as one leg of a MultiEmitter in the server.
type LogEmitter struct{}

func (LogEmitter) Emit(evt Event) {
	e := logger.L().Info()
	for k, v := range evt.Attributes {
		e = e.Str(k, v)
	}
	e.Str("event", evt.Type).Msg("escrow_event")
}

// MultiEmitter fans one event out to several emitters in order.
type MultiEmitter []Emitter

func (m MultiEmitter) Emit(evt Event) {
	for _, e := range m {
		e.Emit(evt)
	}
}
