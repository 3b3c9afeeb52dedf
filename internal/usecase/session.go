package usecase

import (
	"context"
	"time"

	"fad/internal/domain/entity"
	"fad/pkg/errors"
)

type sessionKey struct{}

// WithSession attaches the caller's session to ctx.
func WithSession(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func SessionFrom(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*entity.Session)
	return session, ok && session != nil
}

func requireSession(session *entity.Session) error {
	if session == nil || session.UID == "" {
		return errors.Unauthorized("Authentication required", nil)
	}
	return nil
}

func requireAdmin(session *entity.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if !session.IsAdmin() {
		return errors.Forbidden("Admin privileges required", nil)
	}
	return nil
}

// checkFresh rejects a write when the caller's copy is older than the stored
// record. The stored record is returned as the error details.
func checkFresh(resource string, expected *time.Time, stored time.Time, current interface{}) error {
	if expected != nil && !expected.Equal(stored) {
		return errors.StaleWrite(resource, current)
	}
	return nil
}
