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
)

const requestTableName = "bloodlink.requests"

var requestColumns = utils.StructTagValues(types.BloodRequest{})

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Request(ctx context.Context, requestID string) (*types.BloodRequest, error) {

	query, args, err := psql().Select(requestColumns...).From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var request = new(types.BloodRequest)
	err = pgxscan.Get(ctx, r.pool, request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}

	return request, nil
}

func (r *RequestRepository) ActiveRequests(ctx context.Context) ([]*types.BloodRequest, error) {

	query, args, err := psql().Select(requestColumns...).From(requestTableName).
		Where(sq.Eq{"status": types.RequestStatusActive}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate active requests query: %w", err)
	}

	var requests = make([]*types.BloodRequest, 0)
	if err := pgxscan.Select(ctx, r.pool, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch active requests: %w", err)
	}

	return requests, nil
}

func (r *RequestRepository) RequestsByUser(ctx context.Context, userID string) ([]*types.BloodRequest, error) {

	query, args, err := psql().Select(requestColumns...).From(requestTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate requests-by-user query: %w", err)
	}

	var requests = make([]*types.BloodRequest, 0)
	if err := pgxscan.Select(ctx, r.pool, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch requests by user: %w", err)
	}

	return requests, nil
}

func (r *RequestRepository) CreateRequest(ctx context.Context, request *types.BloodRequest) error {

	now := time.Now()
	request.ID = utils.NanoID()
	request.Status = types.RequestStatusActive
	request.CreatedAt = now
	request.UpdatedAt = now

	requestMap := utils.StructToMap(request)

	query, args, err := psql().Insert(requestTableName).SetMap(requestMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create request")

}

func (r *RequestRepository) DeleteRequest(ctx context.Context, requestID string) error {

	query, args, err := psql().Delete(requestTableName).Where(sq.Eq{"id": requestID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete request query for request %s: %w", requestID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete request")

}

func (r *RequestRepository) CountRequests(ctx context.Context, status types.RequestStatus) (int64, error) {

	builder := psql().Select("count(*)").From(requestTableName)
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count requests query: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}

	return count, nil
}
