package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/pkg/dbmetrics"
	"github.com/batiparc/BTP-ReservationService/pkg/psqlbuilder"
)

// exclusionViolation is the SQLSTATE raised by the GiST exclusion
// constraint on overlapping active reservations.
const exclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"resource_id",
	"site_id",
	"requester_id",
	"date",
	"window_start",
	"window_end",
	"status",
	"motif_refus",
	"commentaire",
	"validator_id",
	"validated_at",
	"created_at",
	"updated_at",
	"deleted_at",
	"deleted_by",
}

// Repository stores reservations in PostgreSQL.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reservation. When a concurrent writer slips an
// overlapping active reservation past the pre-check, the exclusion
// constraint rejects the insert and Create returns ErrWindowTaken.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"resource_id",
			"site_id",
			"requester_id",
			"date",
			"window_start",
			"window_end",
			"status",
			"commentaire",
		).
		Values(
			res.ResourceID,
			res.SiteID,
			res.RequesterID,
			res.Date,
			res.Window.Start,
			res.Window.End,
			res.Status,
			res.Comment,
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
		if isExclusionViolation(err) {
			return nil, ErrWindowTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID fetches a reservation by id, including tombstoned rows.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// FindConflicts returns the active reservations of (resourceID, date)
// whose window overlaps [windowStart, windowEnd) using half-open
// semantics. excludeID ignores one reservation (0 ignores nothing).
// Inside a transaction the matched rows are locked FOR UPDATE so the
// conflict check and the subsequent insert act as one atomic span.
func (r *Repository) FindConflicts(ctx context.Context, resourceID int64, date time.Time, window domain.TimeWindow, excludeID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.Lt{"window_start": window.End}).
		Where(squirrel.Gt{"window_end": window.Start}).
		OrderBy("window_start ASC")

	if excludeID != 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByResourceAndDateRange returns the reservations of a resource
// whose date falls in [from, to], ordered by date and start time.
func (r *Repository) ListByResourceAndDateRange(ctx context.Context, resourceID int64, from, to time.Time, includeInactive bool) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("date ASC, window_start ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResourceAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResourceAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByRequester returns the reservations created by one requester,
// newest first. Optionally filtered by status.
func (r *Repository) ListByRequester(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"requester_id": requesterID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("date DESC, window_start DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRequester - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRequester - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListPending returns every pending reservation ordered by date, the
// work queue of validators.
func (r *Repository) ListPending(ctx context.Context) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("date ASC, window_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatusGuarded moves the reservation from expected to next in
// one conditional statement. A zero-row result means the persisted
// status is no longer expected (concurrent decision) and surfaces as
// ErrStaleStatus; the caller re-reads to distinguish a lost race from
// a missing row. Validator identity and refusal motive are recorded
// when provided.
func (r *Repository) UpdateStatusGuarded(ctx context.Context, id int64, expected, next domain.ReservationStatus, validatorID *int64, motive *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected}).
		Where(squirrel.Eq{"deleted_at": nil})

	if validatorID != nil {
		updateBuilder = updateBuilder.
			Set("validator_id", *validatorID).
			Set("validated_at", squirrel.Expr("NOW()"))
	}
	if motive != nil {
		updateBuilder = updateBuilder.Set("motif_refus", *motive)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusGuarded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusGuarded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusGuarded - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// SoftDelete tombstones the reservation. Rows are never physically
// removed; audit history must stay intact.
func (r *Repository) SoftDelete(ctx context.Context, id int64, actorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("deleted_by", actorID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.ResourceID,
		&res.SiteID,
		&res.RequesterID,
		&res.Date,
		&res.Window.Start,
		&res.Window.End,
		&res.Status,
		&res.RefusalMotive,
		&res.Comment,
		&res.ValidatorID,
		&res.ValidatedAt,
		&createdAt,
		&updatedAt,
		&res.DeletedAt,
		&res.DeletedBy,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == exclusionViolation
}
