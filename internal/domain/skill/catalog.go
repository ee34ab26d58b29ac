package skill

import (
	"time"

	"github.com/google/uuid"
)

// CatalogEntry is a row of the seeded skills catalog, used for admin
// listings. The scoring path works on normalized keys, not catalog rows.
type CatalogEntry struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}
