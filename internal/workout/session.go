package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionTracker remembers the start time of the active workout. The session is persisted under SessionKey
// so it survives a restart. Starting a session replaces the active one.
type SessionTracker struct {
	baseRepository

	now func() time.Time
}

// NewSessionTracker creates a tracker that reads the current time from now.
func NewSessionTracker(store Store, logger *slog.Logger, now func() time.Time) *SessionTracker {
	if now == nil {
		now = time.Now
	}
	return &SessionTracker{
		baseRepository: newBaseRepository(store, logger),
		now:            now,
	}
}

// Start begins a session for dayID and returns its start time in epoch milliseconds.
func (t *SessionTracker) Start(ctx context.Context, dayID string) (int64, error) {
	session := Session{
		DayID:     dayID,
		StartTime: t.now().UnixMilli(),
	}
	if err := saveDocument(ctx, t.baseRepository, SessionKey, session); err != nil {
		return 0, fmt.Errorf("start session: %w", err)
	}
	return session.StartTime, nil
}

// Active returns the active session, if any.
func (t *SessionTracker) Active(ctx context.Context) (Session, bool, error) {
	session, ok, err := loadDocument(ctx, t.baseRepository, SessionKey, func() Session { return Session{} })
	if err != nil {
		return Session{}, false, fmt.Errorf("load session: %w", err)
	}
	return session, ok, nil
}

// StartTime returns the start time of the active session when it belongs to dayID.
func (t *SessionTracker) StartTime(ctx context.Context, dayID string) (int64, bool, error) {
	session, ok, err := t.Active(ctx)
	if err != nil || !ok || session.DayID != dayID {
		return 0, false, err
	}
	return session.StartTime, true, nil
}

// End clears the active session. Ending without an active session is not an error.
func (t *SessionTracker) End(ctx context.Context) error {
	if err := t.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
