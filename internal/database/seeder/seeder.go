package seeder

import (
	"context"

	"taskmatch/internal/database"
)

// Seeder populates one table with baseline rows. Implementations must
// be idempotent so the pipeline command can run them on every start.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
