package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/integrations/googlecalendar"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

// UseCase use case для создания заявки на приём.
//
// Слот проверяется дважды: свежим расчётом доступности по календарю и
// повторной проверкой против заявок в БД внутри Serializable транзакции.
// Событие в календаре создается после фиксации заявки; недоступность
// календаря в этот момент не отменяет заявку - администратор увидит её
// в агенде и перенесет вручную
type UseCase struct {
	apptRepo      AppointmentRepository
	treatmentRepo TreatmentRepository
	availability  AvailabilityService
	calendar      CalendarClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	loc           *time.Location
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	treatmentRepo TreatmentRepository,
	availabilityService AvailabilityService,
	calendar CalendarClient,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:      apptRepo,
		treatmentRepo: treatmentRepo,
		availability:  availabilityService,
		calendar:      calendar,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		loc:           loc,
		logger:        logger,
	}
}

// Execute выполняет use case создания заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: treatment=%q, date=%s, time=%s, client=%q",
		req.TreatmentValue, req.Date, req.Time, req.ClientName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date, slotTime, err := parseDateTime(req, uc.loc)
	if err != nil {
		uc.logger.Warn("CreateAppointment: date/time validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем процедуру
	treatment, err := uc.treatmentRepo.GetByValue(ctx, req.TreatmentValue)
	if err != nil {
		if errors.Is(err, treatmentRepo.ErrTreatmentNotFound) {
			uc.logger.Warn("CreateAppointment: treatment %q not found", req.TreatmentValue)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get treatment %q: %v", req.TreatmentValue, err)
		return nil, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	// 3. Свежая проверка доступности по календарю
	if err := uc.checkSlotAvailable(ctx, date, slotTime, treatment.DurationMinutes); err != nil {
		return nil, err
	}

	// 4. Создаем заявку в Serializable транзакции с повторной проверкой
	// против уже принятых заявок
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := uc.apptRepo.GetActiveByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get active appointments: %v", err)
			return fmt.Errorf("%w: failed to get active appointments: %v", ErrInternal, err)
		}

		if conflict := findOverlap(active, slotTime, treatment.DurationMinutes); conflict != nil {
			uc.logger.Warn("CreateAppointment: slot %s on %s already taken by appointment id=%d",
				slotTime, req.Date, conflict.ID)
			return ErrSlotUnavailable
		}

		appt := uc.buildAppointment(req, treatment, date, slotTime)
		created, err = uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Создаем событие в календаре; заявка уже зафиксирована
	eventID := uc.createCalendarEvent(ctx, created, treatment, date, slotTime, req.Message)

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", created.ID)
	return &Response{
		ID:              created.ID,
		TreatmentValue:  treatment.Value,
		TreatmentLabel:  treatment.Label,
		Date:            created.AppointmentDate.Format(domain.DateFormat),
		Time:            created.AppointmentTime.String(),
		DurationMinutes: created.DurationMinutes,
		ClientName:      created.ClientName,
		Status:          string(created.Status),
		CalendarEventID: eventID,
	}, nil
}

// checkSlotAvailable проверяет запрошенный слот свежим расчётом доступности
func (uc *UseCase) checkSlotAvailable(ctx context.Context, date time.Time, slotTime types.TimeString, duration int) error {
	day, err := uc.availability.GetDayAvailability(ctx, date, availability.Options{
		TreatmentDuration: duration,
		BufferMinutes:     -1,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			uc.logger.Warn("CreateAppointment: invalid availability input: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, availability.ErrUpstreamFetch):
			uc.logger.Error("CreateAppointment: upstream fetch failed: %v", err)
			return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		default:
			uc.logger.Error("CreateAppointment: availability service error: %v", err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	if day.Status == domain.DayStatusClosed {
		uc.logger.Warn("CreateAppointment: practice closed on %s", day.Date)
		return ErrDayClosed
	}

	for _, slot := range day.Slots {
		if slot.Time == slotTime {
			if !slot.Available {
				uc.logger.Warn("CreateAppointment: slot %s on %s is not available", slotTime, day.Date)
				return ErrSlotUnavailable
			}
			return nil
		}
	}

	uc.logger.Warn("CreateAppointment: slot %s on %s is outside bookable hours", slotTime, day.Date)
	return ErrSlotUnavailable
}

// buildAppointment собирает domain модель заявки из запроса
func (uc *UseCase) buildAppointment(req *Request, treatment *domain.Treatment, date time.Time, slotTime types.TimeString) *domain.Appointment {
	appt := &domain.Appointment{
		TreatmentID:     &treatment.ID,
		AppointmentDate: date,
		AppointmentTime: slotTime,
		DurationMinutes: treatment.DurationMinutes,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		Status:          domain.StatusPending,
	}
	if req.Message != "" {
		appt.Message = &req.Message
	}
	return appt
}

// createCalendarEvent создает событие-приём в календаре и привязывает его
// к заявке. Возвращает nil, если календарь недоступен
func (uc *UseCase) createCalendarEvent(
	ctx context.Context,
	appt *domain.Appointment,
	treatment *domain.Treatment,
	date time.Time,
	slotTime types.TimeString,
	message string,
) *string {
	start := slotTime.OnDate(date, uc.loc)
	end := start.Add(time.Duration(treatment.DurationMinutes) * time.Minute)

	event, err := uc.calendar.CreateAppointment(ctx, googlecalendar.AppointmentEvent{
		ClientName:    appt.ClientName,
		ClientEmail:   appt.ClientEmail,
		ClientPhone:   appt.ClientPhone,
		TreatmentName: treatment.Label,
		Start:         start,
		End:           end,
		Message:       message,
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to create calendar event for id=%d: %v", appt.ID, err)
		return nil
	}

	if err := uc.apptRepo.SetCalendarEventID(ctx, appt.ID, event.ID); err != nil {
		uc.logger.Warn("CreateAppointment: failed to link calendar event %s to id=%d: %v", event.ID, appt.ID, err)
	}

	return &event.ID
}

// findOverlap возвращает первую активную заявку, пересекающуюся с запрошенным слотом
func findOverlap(active []*domain.Appointment, slotTime types.TimeString, duration int) *domain.Appointment {
	slotStart := slotTime.Minutes()
	slotEnd := slotStart + duration

	for _, appt := range active {
		start := appt.AppointmentTime.Minutes()
		end := start + appt.DurationMinutes
		if slotStart < end && slotEnd > start {
			return appt
		}
	}

	return nil
}
