package repositories

import (
	"context"

	"github.com/google/uuid"
)

type AssignmentRepository interface {
	// DistributorFor resolves the seller's assigned distributor; callers
	// treat pgx.ErrNoRows as "unassigned".
	DistributorFor(ctx context.Context, sellerID uuid.UUID) (uuid.UUID, error)
	Assign(ctx context.Context, distributorID, sellerID uuid.UUID) error
}

type assignmentRepo struct {
	db Querier
}

func NewAssignmentRepo(db Querier) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) DistributorFor(ctx context.Context, sellerID uuid.UUID) (uuid.UUID, error) {
	var distributorID uuid.UUID
	query := `SELECT distributor_id FROM distributor_sellers WHERE seller_id = $1`
	err := r.db.QueryRow(ctx, query, sellerID).Scan(&distributorID)
	if err != nil {
		return uuid.Nil, err
	}
	return distributorID, nil
}

func (r *assignmentRepo) Assign(ctx context.Context, distributorID, sellerID uuid.UUID) error {
	query := `
		INSERT INTO distributor_sellers (distributor_id, seller_id)
		VALUES ($1, $2)
		ON CONFLICT (distributor_id, seller_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, distributorID, sellerID)
	return err
}
