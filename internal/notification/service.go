package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
	"github.com/RolandoRobles12/registro-aviva-sub002/internal/validation"
)

// PgxPool is the subset of pgxpool.Pool used by the notification outbox,
// satisfied by pgxmock in tests
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service enqueues notifications for asynchronous delivery. Emit never
// contacts the endpoint directly; it only records a pending outbox row.
type Service struct {
	pool PgxPool
}

var _ validation.Notifier = (*Service)(nil)

func NewService(pool PgxPool) *Service {
	return &Service{pool: pool}
}

func (s *Service) Emit(ctx context.Context, n domain.Notification) error {
	event := EventPayload{
		Type:      n.Type,
		Data:      n,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	query := `
		INSERT INTO notifications (type, payload, status)
		VALUES ($1, $2, 'pending')
	`

	_, err = s.pool.Exec(ctx, query, n.Type, payload)
	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	return nil
}
