package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/dbmetrics"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий заявок на приём (таблица appointments)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var appointmentColumns = []string{
	"id",
	"treatment_id",
	"appointment_date",
	"appointment_time",
	"duration",
	"client_name",
	"client_email",
	"client_phone",
	"message",
	"status",
	"google_calendar_event_id",
	"transferred_to_cms",
	"transferred_at",
	"created_at",
	"updated_at",
}

// Create создает новую заявку на приём
// Если в контексте передана активная транзакция, использует её -
// создание заявки с повторной проверкой слота выполняется в Serializable
// транзакции для снижения риска двойного бронирования
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"treatment_id",
			"appointment_date",
			"appointment_time",
			"duration",
			"client_name",
			"client_email",
			"client_phone",
			"message",
			"status",
			"google_calendar_event_id",
		).
		Values(
			appt.TreatmentID,
			appt.AppointmentDate,
			appt.AppointmentTime,
			appt.DurationMinutes,
			appt.ClientName,
			appt.ClientEmail,
			appt.ClientPhone,
			appt.Message,
			appt.Status,
			appt.GoogleCalendarEventID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetActiveByDate получает все неотмененные заявки на дату
// Используется для повторной проверки слота перед созданием заявки
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"appointment_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("appointment_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var appts []*domain.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByDate - scan row: %v", ErrScanRow, err)
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - rows iteration: %v", ErrExecQuery, err)
	}

	return appts, nil
}

// ListWithTreatments получает все заявки с процедурами для страницы агенды.
// Непереданные в CMS заявки идут первыми, внутри группы - по дате и времени
func (r *Repository) ListWithTreatments(ctx context.Context) ([]*domain.AppointmentWithTreatment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.treatment_id",
		"a.appointment_date",
		"a.appointment_time",
		"a.duration",
		"a.client_name",
		"a.client_email",
		"a.client_phone",
		"a.message",
		"a.status",
		"a.google_calendar_event_id",
		"a.transferred_to_cms",
		"a.transferred_at",
		"a.created_at",
		"a.updated_at",
		"t.label",
		"t.value",
	).
		From("appointments a").
		LeftJoin("treatments t ON t.id = a.treatment_id").
		OrderBy(
			"a.transferred_to_cms ASC",
			"a.appointment_date ASC",
			"a.appointment_time ASC",
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWithTreatments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithTreatments - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []*domain.AppointmentWithTreatment
	for rows.Next() {
		var item domain.AppointmentWithTreatment
		var apptDate time.Time
		var message, eventID, label, value sql.NullString
		var transferredAt, createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&item.ID,
			&item.TreatmentID,
			&apptDate,
			&item.AppointmentTime,
			&item.DurationMinutes,
			&item.ClientName,
			&item.ClientEmail,
			&item.ClientPhone,
			&message,
			&item.Status,
			&eventID,
			&item.TransferredToCMS,
			&transferredAt,
			&createdAt,
			&updatedAt,
			&label,
			&value,
		); err != nil {
			return nil, fmt.Errorf("%w: ListWithTreatments - scan row: %v", ErrScanRow, err)
		}

		item.AppointmentDate = apptDate
		if message.Valid {
			item.Message = &message.String
		}
		if eventID.Valid {
			item.GoogleCalendarEventID = &eventID.String
		}
		if transferredAt.Valid {
			t := transferredAt.Time
			item.TransferredAt = &t
		}
		if label.Valid {
			item.TreatmentLabel = &label.String
		}
		if value.Valid {
			item.TreatmentValue = &value.String
		}
		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time

		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithTreatments - rows iteration: %v", ErrExecQuery, err)
	}

	return result, nil
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
	default:
		return ErrInvalidStatus
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// SetCalendarEventID привязывает заявку к созданному событию календаря
func (r *Repository) SetCalendarEventID(ctx context.Context, id int64, eventID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("google_calendar_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// SetTransferred отмечает заявку как перенесенную (или не перенесенную) в CMS
func (r *Repository) SetTransferred(ctx context.Context, id int64, transferred bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("appointments").
		Set("transferred_to_cms", transferred).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if transferred {
		builder = builder.Set("transferred_at", squirrel.Expr("NOW()"))
	} else {
		builder = builder.Set("transferred_at", nil)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetTransferred - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetTransferred - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetTransferred - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var apptDate time.Time
	var message, eventID sql.NullString
	var transferredAt, createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&appt.ID,
		&appt.TreatmentID,
		&apptDate,
		&appt.AppointmentTime,
		&appt.DurationMinutes,
		&appt.ClientName,
		&appt.ClientEmail,
		&appt.ClientPhone,
		&message,
		&appt.Status,
		&eventID,
		&appt.TransferredToCMS,
		&transferredAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	appt.AppointmentDate = apptDate
	if message.Valid {
		appt.Message = &message.String
	}
	if eventID.Valid {
		appt.GoogleCalendarEventID = &eventID.String
	}
	if transferredAt.Valid {
		t := transferredAt.Time
		appt.TransferredAt = &t
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}
