package blockedperiod

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	"github.com/rodrigocvmd/pgra-backend/pkg/dbmetrics"
	"github.com/rodrigocvmd/pgra-backend/pkg/psqlbuilder"
)

var blockedPeriodColumns = []string{
	"id",
	"resource_id",
	"blocked_start",
	"blocked_end",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с заблокированными периодами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заблокированных периодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый заблокированный период
func (r *Repository) Create(ctx context.Context, bp *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_periods").
		Columns(
			"resource_id",
			"blocked_start",
			"blocked_end",
			"reason",
		).
		Values(
			bp.ResourceID,
			bp.Period.Start,
			bp.Period.End,
			bp.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&bp.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	bp.CreatedAt = createdAt.Time

	return bp, nil
}

// GetByID получает заблокированный период по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedPeriodColumns...).
		From("blocked_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var bp domain.BlockedPeriod
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&bp.ID,
		&bp.ResourceID,
		&bp.Period.Start,
		&bp.Period.End,
		&bp.Reason,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockedPeriodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blocked period: %w", ErrScanRow, err)
	}

	bp.CreatedAt = createdAt.Time

	return &bp, nil
}

// ListByResource получает заблокированные периоды ресурса
func (r *Repository) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedPeriodColumns...).
		From("blocked_periods").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("blocked_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedPeriods(rows)
}

// FindOverlapping получает заблокированные периоды ресурса, пересекающие
// интервал [period.Start, period.End) в полуоткрытой семантике
func (r *Repository) FindOverlapping(ctx context.Context, resourceID uuid.UUID, period domain.Interval) ([]*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedPeriodColumns...).
		From("blocked_periods").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Gt{"blocked_end": period.Start}).
		Where(squirrel.Lt{"blocked_start": period.End}).
		OrderBy("blocked_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedPeriods(rows)
}

// Delete удаляет заблокированный период
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedPeriodNotFound
	}

	return nil
}

// scanBlockedPeriods сканирует результаты запроса в слайс периодов
func (r *Repository) scanBlockedPeriods(rows *sql.Rows) ([]*domain.BlockedPeriod, error) {
	periods := make([]*domain.BlockedPeriod, 0)

	for rows.Next() {
		var bp domain.BlockedPeriod
		var createdAt sql.NullTime

		err := rows.Scan(
			&bp.ID,
			&bp.ResourceID,
			&bp.Period.Start,
			&bp.Period.End,
			&bp.Reason,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBlockedPeriods - scan row: %w", ErrScanRow, err)
		}

		bp.CreatedAt = createdAt.Time

		periods = append(periods, &bp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedPeriods - rows error: %w", ErrScanRow, err)
	}

	return periods, nil
}
