package history

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// Repository provides access to persisted generations.
type Repository struct {
	db *bun.DB
}

func NewRepository(database *Database) *Repository {
	return &Repository{db: database.Bun()}
}

func (r *Repository) Save(ctx context.Context, gen *Generation) error {
	_, err := r.db.NewInsert().Model(gen).Exec(ctx)
	return err
}

// Recent returns the latest generations, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []Generation
	err := r.db.NewSelect().Model(&results).
		Column("id", "branch", "pr_number", "title", "change_type", "confidence", "template", "created_at").
		OrderExpr("created_at DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// LatestForBranch returns the most recent generation for a branch, or nil
// when the branch has none.
func (r *Repository) LatestForBranch(ctx context.Context, branch string) (*Generation, error) {
	gen := new(Generation)
	err := r.db.NewSelect().Model(gen).
		Where("branch = ?", branch).
		OrderExpr("created_at DESC, id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return gen, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*Generation)(nil)).Count(ctx)
}
