// internal/domain/run/repository.go
package run

import "context"

// Repository persists report run history.
type Repository interface {
	Save(ctx context.Context, r *Run) error
	ListRecent(ctx context.Context, limit int) ([]*Run, error)
}
