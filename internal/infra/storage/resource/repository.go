package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	"github.com/rodrigocvmd/pgra-backend/pkg/dbmetrics"
	"github.com/rodrigocvmd/pgra-backend/pkg/psqlbuilder"
)

// pgForeignKeyViolation код ошибки PostgreSQL при нарушении внешнего ключа.
// Возникает при удалении ресурса, на который ссылаются бронирования (ON DELETE RESTRICT).
const pgForeignKeyViolation = "23503"

// Repository репозиторий для работы с ресурсами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый ресурс
func (r *Repository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns(
			"owner_id",
			"name",
			"description",
			"image_url",
			"price_per_hour",
		).
		Values(
			res.OwnerID,
			res.Name,
			res.Description,
			res.ImageURL,
			res.PricePerHour,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает ресурс по ID.
// Если контекст содержит активную транзакцию, строка блокируется FOR UPDATE,
// чтобы сериализовать проверку конфликтов и запись по одному ресурсу.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"description",
		"image_url",
		"price_per_hour",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Resource
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.OwnerID,
		&res.Name,
		&res.Description,
		&res.ImageURL,
		&res.PricePerHour,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %w", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// List получает все ресурсы
func (r *Repository) List(ctx context.Context) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"description",
		"image_url",
		"price_per_hour",
		"created_at",
		"updated_at",
	).
		From("resources").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanResources(rows)
}

// GetByOwnerID получает ресурсы владельца
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"description",
		"image_url",
		"price_per_hour",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanResources(rows)
}

// Update применяет частичное обновление ресурса
func (r *Repository) Update(ctx context.Context, id uuid.UUID, upd domain.ResourceUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("resources").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Name != nil {
		updateBuilder = updateBuilder.Set("name", *upd.Name)
	}
	if upd.Description != nil {
		updateBuilder = updateBuilder.Set("description", *upd.Description)
	}
	if upd.ImageURL != nil {
		updateBuilder = updateBuilder.Set("image_url", *upd.ImageURL)
	}
	if upd.PricePerHour != nil {
		updateBuilder = updateBuilder.Set("price_per_hour", *upd.PricePerHour)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

// Delete удаляет ресурс. Заблокированные периоды каскадируются на уровне БД;
// любые ссылающиеся бронирования (активные или исторические) удерживают
// удаление внешним ключом ON DELETE RESTRICT.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return ErrHasReservations
		}
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

// scanResources сканирует результаты запроса в слайс ресурсов
func (r *Repository) scanResources(rows *sql.Rows) ([]*domain.Resource, error) {
	resources := make([]*domain.Resource, 0)

	for rows.Next() {
		var res domain.Resource
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.OwnerID,
			&res.Name,
			&res.Description,
			&res.ImageURL,
			&res.PricePerHour,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanResources - scan row: %w", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		resources = append(resources, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanResources - rows error: %w", ErrScanRow, err)
	}

	return resources, nil
}
