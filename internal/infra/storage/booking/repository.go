package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"check_in",
	"check_out",
	"status",
	"total_price",
	"guest_name",
	"guest_email",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с позициями.
// Если в контексте передана активная транзакция, использует её — при создании
// бронирования с проверкой доступности это обязательно, иначе между проверкой
// и вставкой возможна гонка (см. usecase/create_booking).
func (r *Repository) Create(ctx context.Context, b *domain.Booking, items []*domain.BookingItem) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("user_id", "check_in", "check_out", "status", "total_price",
			"guest_name", "guest_email").
		Values(b.UserID, b.CheckIn, b.CheckOut, b.Status, b.TotalPrice,
			b.GuestName, b.GuestEmail).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	for _, item := range items {
		item.BookingID = b.ID

		query, args, err := psqlbuilder.Insert("booking_items").
			Columns("booking_id", "resource_type", "resource_id", "quantity",
				"price", "start_date", "end_date").
			Values(item.BookingID, item.ResourceType, item.ResourceID, item.Quantity,
				item.Price, item.StartDate, item.EndDate).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build item insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute item insert: %v", ErrExecQuery, err)
		}
	}

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByUserID получает список бронирований пользователя,
// опционально фильтруя по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetItems получает позиции бронирования.
// Даты позиций нормализуются прямо в запросе: у записей, импортированных без
// явных дат, интервал наследуется от дат бронирования (COALESCE). Движок
// доступности никогда не видит NULL-дат.
func (r *Repository) GetItems(ctx context.Context, bookingID uuid.UUID) ([]*domain.BookingItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"bi.id",
		"bi.booking_id",
		"bi.resource_type",
		"bi.resource_id",
		"bi.quantity",
		"bi.price",
		"COALESCE(bi.start_date, b.check_in) AS start_date",
		"COALESCE(bi.end_date, b.check_out) AS end_date",
	).
		From("booking_items bi").
		Join("bookings b ON b.id = bi.booking_id").
		Where(squirrel.Eq{"bi.booking_id": bookingID}).
		OrderBy("bi.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// GetOverlappingItems получает позиции бронирований, чей интервал пересекается
// с окном [filter.From, filter.To]. Это грубый префильтр: точное посуточное
// правило покрытия применяет движок доступности, здесь допустимо лишнее.
//
// Ёмкость занимают только статусы из filter.Statuses (обычно confirmed);
// отменённые бронирования отфильтровываются здесь и физически не удаляются.
//
// Внутри транзакции выбранные строки блокируются (FOR UPDATE OF bi, b):
// это закрывает гонку check-then-act при создании бронирования.
func (r *Repository) GetOverlappingItems(ctx context.Context, filter domain.LineItemFilter) ([]*domain.BookingItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"bi.id",
		"bi.booking_id",
		"bi.resource_type",
		"bi.resource_id",
		"bi.quantity",
		"bi.price",
		"COALESCE(bi.start_date, b.check_in) AS start_date",
		"COALESCE(bi.end_date, b.check_out) AS end_date",
	).
		From("booking_items bi").
		Join("bookings b ON b.id = bi.booking_id").
		Where(squirrel.Eq{"bi.resource_type": filter.ResourceType}).
		Where(squirrel.Eq{"b.status": filter.Statuses}).
		Where(squirrel.Expr("COALESCE(bi.start_date, b.check_in) <= ?", filter.To)).
		Where(squirrel.Expr("COALESCE(bi.end_date, b.check_out) >= ?", filter.From))

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"bi.resource_id": *filter.ResourceID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF bi, b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины.
// Позиции не удаляются: они перестают занимать ёмкость за счёт фильтра статуса.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SumRevenue возвращает сумму total_price по бронированиям в статусе
func (r *Repository) SumRevenue(ctx context.Context, status domain.BookingStatus) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(total_price), 0)").
		From("bookings").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumRevenue - build select query: %v", ErrBuildQuery, err)
	}

	var sum float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumRevenue - scan sum: %v", ErrScanRow, err)
	}

	return sum, nil
}

// CountByStatus возвращает число бронирований в статусе
func (r *Repository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountDistinctGuests возвращает число уникальных гостей, когда-либо бронировавших
func (r *Repository) CountDistinctGuests(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT user_id)").
		From("bookings").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountDistinctGuests - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountDistinctGuests - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.CheckIn,
		&b.CheckOut,
		&b.Status,
		&b.TotalPrice,
		&b.GuestName,
		&b.GuestEmail,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanItems(rows *sql.Rows) ([]*domain.BookingItem, error) {
	items := make([]*domain.BookingItem, 0)

	for rows.Next() {
		var item domain.BookingItem

		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.ResourceType,
			&item.ResourceID,
			&item.Quantity,
			&item.Price,
			&item.StartDate,
			&item.EndDate,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanItems - scan row: %v", ErrScanRow, err)
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
