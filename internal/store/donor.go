package store

import (
	"bloodlink/internal/utils"
	"bloodlink/pkg/types"
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/k0kubun/pp/v3"
)

const donorTableName = "bloodlink.donors"

var donorColumns = utils.StructTagValues(types.Donor{})

type DonorRepository struct {
	pool *pgxpool.Pool
}

func NewDonorRepository(pool *pgxpool.Pool) *DonorRepository {
	return &DonorRepository{pool: pool}
}

func (r *DonorRepository) Donor(ctx context.Context, donorID string) (*types.Donor, error) {

	query, args, err := psql().Select(donorColumns...).From(donorTableName).
		Where(sq.Eq{"id": donorID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor query: %w", err)
	}

	var donor = new(types.Donor)
	err = pgxscan.Get(ctx, r.pool, donor, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonorNotFound
		}
		return nil, fmt.Errorf("failed to fetch donor: %w", err)
	}

	return donor, nil
}

// DonorByUser returns the single donor profile owned by an identity. One
// profile per identity is enforced here by lookup, not by the store.
func (r *DonorRepository) DonorByUser(ctx context.Context, userID string) (*types.Donor, error) {

	query, args, err := psql().Select(donorColumns...).From(donorTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor-by-user query: %w", err)
	}

	var donor = new(types.Donor)
	err = pgxscan.Get(ctx, r.pool, donor, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonorNotFound
		}
		return nil, fmt.Errorf("failed to fetch donor by user: %w", err)
	}

	return donor, nil
}

func (r *DonorRepository) AvailableDonors(ctx context.Context) ([]*types.Donor, error) {

	query, args, err := psql().Select(donorColumns...).From(donorTableName).
		Where(sq.Eq{"available": true}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate available donors query: %w", err)
	}

	var donors = make([]*types.Donor, 0)
	if err := pgxscan.Select(ctx, r.pool, &donors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch available donors: %w", err)
	}

	return donors, nil
}

func (r *DonorRepository) CreateDonor(ctx context.Context, donor *types.Donor) error {

	now := time.Now()
	donor.ID = utils.NanoID()
	donor.CreatedAt = now
	donor.UpdatedAt = now

	donorMap := utils.StructToMap(donor)

	query, args, err := psql().Insert(donorTableName).SetMap(donorMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donor query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donor")

}

func (r *DonorRepository) UpdateDonor(ctx context.Context, donorID string, donor *types.Donor) error {

	now := time.Now()
	donor.ID = donorID
	donor.UpdatedAt = now

	donorMap := utils.StructToMap(donor)

	pp.Print(donorMap)

	query, args, err := psql().Update(donorTableName).SetMap(donorMap).Where(sq.Eq{"id": donorID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update donor query for donor %s: %w", donorID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to update donor")

}

func (r *DonorRepository) CountDonors(ctx context.Context) (int64, error) {

	query, args, err := psql().Select("count(*)").From(donorTableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count donors query: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count donors: %w", err)
	}

	return count, nil
}
