package history

import (
	"time"

	"github.com/uptrace/bun"
)

// Generation is one persisted PR-description generation.
type Generation struct {
	bun.BaseModel `bun:"table:generations"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	Branch     string    `bun:"branch" json:"branch"`
	PRNumber   *int      `bun:"pr_number" json:"pr_number,omitempty"`
	Title      string    `bun:"title" json:"title"`
	ChangeType string    `bun:"change_type" json:"change_type"`
	Confidence float64   `bun:"confidence" json:"confidence"`
	Template   string    `bun:"template" json:"template"`
	Document   string    `bun:"document" json:"document"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:now()" json:"created_at"`
}
