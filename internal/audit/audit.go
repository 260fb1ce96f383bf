package audit

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"drink-service/internal/auth"
	"drink-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// Action represents the mutation being recorded
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

const (
	resourceTypeDrink = "drink"
	actorUnknown      = "unknown"
	logWriteTimeout   = 2 * time.Second
)

// Event is one audit record: who did what to which drink, and how it ended.
type Event struct {
	ID         uuid.UUID
	Actor      string
	Action     Action
	ResourceID string
	Status     Status
	Detail     map[string]any
	CreatedAt  time.Time
}

// Logger persists audit events. Write failures are reported to the caller
// but must never fail the request that produced them.
type Logger struct {
	pool *pgxpool.Pool
}

func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var detailJSON []byte
	if event.Detail != nil {
		var err error
		detailJSON, err = json.Marshal(sanitizeDetail(event.Detail))
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_log (id, actor, action, resource_type, resource_id, status, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := l.pool.Exec(ctx, query,
		event.ID,
		event.Actor,
		event.Action,
		resourceTypeDrink,
		event.ResourceID,
		event.Status,
		detailJSON,
		event.CreatedAt,
	)

	return err
}

// sanitizeDetail scrubs credential-shaped strings before they are persisted.
func sanitizeDetail(detail map[string]any) map[string]any {
	clean := make(map[string]any, len(detail))
	for k, v := range detail {
		if s, ok := v.(string); ok {
			clean[k] = logger.Sanitize(s)
			continue
		}
		clean[k] = v
	}
	return clean
}

// LogDrinkMutation records a drink mutation with the actor taken from the
// verified claims on the request. Runs in the request goroutine with its
// own timeout; the caller only logs the returned error.
func (l *Logger) LogDrinkMutation(c echo.Context, action Action, drinkID int64, status Status, detail map[string]any) error {
	actor := actorUnknown
	if claims, err := auth.GetClaims(c); err == nil {
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			actor = sub
		}
	}

	event := &Event{
		Actor:      actor,
		Action:     action,
		ResourceID: strconv.FormatInt(drinkID, 10),
		Status:     status,
		Detail:     detail,
	}

	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	defer cancel()

	return l.Log(ctx, event)
}
