package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// SessionIDKey carries the session id of the caller for log correlation.
const SessionIDKey ctxKey = "session_id"

// WithSession returns a context tagged with the given session id.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

// SessionID extracts the session id set by WithSession, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

// Time logs the duration of op when the returned func is called. Pass a
// pointer to the named error result to include it in the log line.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	sessionID := SessionID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("session=%s op=%s dur=%dms err=%v", sessionID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("session=%s op=%s dur=%dms", sessionID, name, dur.Milliseconds())
	}
}
