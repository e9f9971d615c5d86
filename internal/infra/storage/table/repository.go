package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/dbmetrics"
	"github.com/tablebook/reservation-service/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

// DBExecutor общий интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы со столами и комбинациями столов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateTable создает новый стол
func (r *Repository) CreateTable(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tables").
		Columns("restaurant_id", "table_number", "capacity", "is_active").
		Values(table.RestaurantID, table.TableNumber, table.Capacity, table.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTable - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&table.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTableNumber
		}
		return nil, fmt.Errorf("%w: CreateTable - execute insert: %v", ErrExecQuery, err)
	}

	table.CreatedAt = createdAt.Time
	table.UpdatedAt = updatedAt.Time

	return table, nil
}

// GetTableByID получает стол по ID
func (r *Repository) GetTableByID(ctx context.Context, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "restaurant_id", "table_number", "capacity", "is_active", "created_at", "updated_at",
	).
		From("tables").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTableByID - build select query: %v", ErrBuildQuery, err)
	}

	var table domain.Table
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&table.ID,
		&table.RestaurantID,
		&table.TableNumber,
		&table.Capacity,
		&table.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTableByID - scan table: %v", ErrScanRow, err)
	}

	table.CreatedAt = createdAt.Time
	table.UpdatedAt = updatedAt.Time

	return &table, nil
}

// ListTables получает столы ресторана
// По умолчанию только активные: неактивные столы не участвуют в аллокации
func (r *Repository) ListTables(ctx context.Context, restaurantID int64, includeInactive bool) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "restaurant_id", "table_number", "capacity", "is_active", "created_at", "updated_at",
	).
		From("tables").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("table_number ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTables - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		var table domain.Table
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&table.ID,
			&table.RestaurantID,
			&table.TableNumber,
			&table.Capacity,
			&table.IsActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListTables - scan row: %v", ErrScanRow, err)
		}

		table.CreatedAt = createdAt.Time
		table.UpdatedAt = updatedAt.Time
		tables = append(tables, &table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTables - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// UpdateTable обновляет стол (номер, вместимость, активность)
func (r *Repository) UpdateTable(ctx context.Context, table *domain.Table) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tables").
		Set("table_number", table.TableNumber).
		Set("capacity", table.Capacity).
		Set("is_active", table.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": table.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTable - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTableNumber
		}
		return fmt.Errorf("%w: UpdateTable - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTable - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTableNotFound
	}

	return nil
}

// CreateCombined создает комбинацию столов вместе со списком участников
// TotalCapacity вычисляется вызывающей стороной как сумма вместимостей
// участников на момент создания
func (r *Repository) CreateCombined(ctx context.Context, combo *domain.CombinedTable) (*domain.CombinedTable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("combined_tables").
		Columns("restaurant_id", "name", "total_capacity", "is_active").
		Values(combo.RestaurantID, combo.Name, combo.TotalCapacity, combo.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCombined - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&combo.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCombined - execute insert: %v", ErrExecQuery, err)
	}

	combo.CreatedAt = createdAt.Time
	combo.UpdatedAt = updatedAt.Time

	memberBuilder := psqlbuilder.Insert("combined_table_members").
		Columns("combined_table_id", "table_id", "position")
	for i, tableID := range combo.TableIDs {
		memberBuilder = memberBuilder.Values(combo.ID, tableID, i)
	}

	query, args, err = memberBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCombined - build members insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateCombined - insert members: %v", ErrExecQuery, err)
	}

	return combo, nil
}

// GetCombinedByID получает комбинацию столов по ID вместе с участниками
func (r *Repository) GetCombinedByID(ctx context.Context, id int64) (*domain.CombinedTable, error) {
	combos, err := r.listCombined(ctx, squirrel.Eq{"ct.id": id})
	if err != nil {
		return nil, err
	}
	if len(combos) == 0 {
		return nil, ErrCombinedTableNotFound
	}
	return combos[0], nil
}

// ListCombined получает комбинации столов ресторана с участниками
func (r *Repository) ListCombined(ctx context.Context, restaurantID int64, includeInactive bool) ([]*domain.CombinedTable, error) {
	where := squirrel.And{squirrel.Eq{"ct.restaurant_id": restaurantID}}
	if !includeInactive {
		where = append(where, squirrel.Eq{"ct.is_active": true})
	}
	return r.listCombined(ctx, where)
}

// DeleteCombined удаляет комбинацию столов (участники удаляются каскадно)
func (r *Repository) DeleteCombined(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("combined_tables").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteCombined - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteCombined - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteCombined - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCombinedTableNotFound
	}

	return nil
}

// RefreshStoredCapacities пересчитывает сохранённые суммы вместимостей всех
// комбинаций, в которые входит указанный стол
//
// Сохранённая сумма - только кеш для отображения: аллокация всегда считает
// вместимость по живым данным столов. Обновление здесь устраняет дрейф
// кеша после изменения вместимости стола.
func (r *Repository) RefreshStoredCapacities(ctx context.Context, tableID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		UPDATE combined_tables ct
		SET total_capacity = (
			SELECT COALESCE(SUM(t.capacity), 0)
			FROM combined_table_members m
			JOIN tables t ON t.id = m.table_id
			WHERE m.combined_table_id = ct.id
		),
		updated_at = NOW()
		WHERE ct.id IN (
			SELECT combined_table_id FROM combined_table_members WHERE table_id = $1
		)`

	if _, err := executor.ExecContext(ctx, query, tableID); err != nil {
		return fmt.Errorf("%w: RefreshStoredCapacities - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// listCombined загружает комбинации с агрегированным списком участников
func (r *Repository) listCombined(ctx context.Context, where interface{}) ([]*domain.CombinedTable, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"ct.id",
		"ct.restaurant_id",
		"ct.name",
		"ct.total_capacity",
		"ct.is_active",
		"array_agg(m.table_id ORDER BY m.position)",
		"ct.created_at",
		"ct.updated_at",
	).
		From("combined_tables ct").
		Join("combined_table_members m ON m.combined_table_id = ct.id").
		Where(where).
		GroupBy("ct.id").
		OrderBy("ct.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listCombined - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listCombined - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	combos := make([]*domain.CombinedTable, 0)
	for rows.Next() {
		var combo domain.CombinedTable
		var memberIDs pq.Int64Array
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&combo.ID,
			&combo.RestaurantID,
			&combo.Name,
			&combo.TotalCapacity,
			&combo.IsActive,
			&memberIDs,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: listCombined - scan row: %v", ErrScanRow, err)
		}

		combo.TableIDs = memberIDs
		combo.CreatedAt = createdAt.Time
		combo.UpdatedAt = updatedAt.Time
		combos = append(combos, &combo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listCombined - rows error: %v", ErrScanRow, err)
	}

	return combos, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
