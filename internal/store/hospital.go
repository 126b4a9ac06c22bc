package store

import (
	"bloodlink/internal/utils"
	"bloodlink/pkg/types"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const hospitalTableName = "bloodlink.hospitals"

var hospitalColumns = utils.StructTagValues(types.Hospital{})

type HospitalRepository struct {
	pool *pgxpool.Pool
}

func NewHospitalRepository(pool *pgxpool.Pool) *HospitalRepository {
	return &HospitalRepository{pool: pool}
}

func (r *HospitalRepository) Hospitals(ctx context.Context) ([]*types.Hospital, error) {

	query, args, err := psql().Select(hospitalColumns...).From(hospitalTableName).
		OrderBy("display_order asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate hospitals query: %w", err)
	}

	var hospitals = make([]*types.Hospital, 0)
	if err := pgxscan.Select(ctx, r.pool, &hospitals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch hospitals: %w", err)
	}

	return hospitals, nil
}

// UpsertHospital keeps the seeded directory in sync with the seed file.
func (r *HospitalRepository) UpsertHospital(ctx context.Context, hospital *types.Hospital) error {

	query := `
		INSERT INTO bloodlink.hospitals (id, name, address, contact, display_order)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address,
			contact = EXCLUDED.contact, display_order = EXCLUDED.display_order`

	_, err := r.pool.Exec(ctx, query, hospital.ID, hospital.Name, hospital.Address, hospital.Contact, hospital.DisplayOrder)
	if err != nil {
		return fmt.Errorf("upsert hospital %s: %w", hospital.ID, err)
	}

	return nil
}

// DeleteHospitalsExcept removes directory rows no longer present in the seed.
func (r *HospitalRepository) DeleteHospitalsExcept(ctx context.Context, keepIDs []string) error {

	query, args, err := psql().Delete(hospitalTableName).
		Where(sq.NotEq{"id": keepIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate hospital cleanup query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete stale hospitals")
}
