package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	apptRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/appointment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/integrations/googlecalendar"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/appointments/models"
)

// Service сервис для работы с заявками на приём.
//
// База данных - источник истины по статусу заявки; событие во внешнем
// календаре синхронизируется по возможности. Ошибка календаря при
// подтверждении или отмене логируется, но не откатывает смену статуса
type Service struct {
	apptRepo      AppointmentRepository
	treatmentRepo TreatmentRepository
	calendar      CalendarClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	apptRepo AppointmentRepository,
	treatmentRepo TreatmentRepository,
	calendar CalendarClient,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:      apptRepo,
		treatmentRepo: treatmentRepo,
		calendar:      calendar,
		logger:        logger,
	}
}

// Treatments возвращает активные процедуры для формы бронирования
func (s *Service) Treatments(ctx context.Context) (*models.TreatmentListResponse, error) {
	treatments, err := s.treatmentRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("Treatments: repository error: %v", err)
		return nil, fmt.Errorf("%w: Treatments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTreatments(treatments), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appt, err := s.fetch(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// Agenda возвращает все заявки с процедурами для страницы агенды.
// Непереданные в CMS заявки идут первыми
func (s *Service) Agenda(ctx context.Context) (*models.AgendaResponse, error) {
	appts, err := s.apptRepo.ListWithTreatments(ctx)
	if err != nil {
		s.logger.Error("Agenda: repository error: %v", err)
		return nil, fmt.Errorf("%w: Agenda - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Agenda: fetched %d appointments", len(appts))
	return models.FromDomainAgenda(appts), nil
}

// Confirm подтверждает ожидающую заявку.
// Событие в календаре помечается галочкой, чтобы подтверждение было
// видно администратору прямо в календаре
func (s *Service) Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d", id)

	appt, err := s.fetch(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}

	if !appt.CanBeConfirmed() {
		s.logger.Warn("Confirm: appointment id=%d has status %s, cannot confirm", id, appt.Status)
		return nil, ErrCannotConfirm
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		s.logger.Error("Confirm: failed to update status for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}
	appt.Status = domain.StatusConfirmed

	if appt.GoogleCalendarEventID != nil {
		patch := &googlecalendar.Event{
			Summary: fmt.Sprintf("✅ Afspraak - %s", appt.ClientName),
			ColorID: domain.AppointmentColorID,
		}
		if _, err := s.calendar.UpdateEvent(ctx, *appt.GoogleCalendarEventID, patch); err != nil {
			s.logger.Warn("Confirm: failed to update calendar event %s for id=%d: %v",
				*appt.GoogleCalendarEventID, id, err)
		}
	}

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет заявку и освобождает слот, удаляя событие из календаря
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	appt, err := s.fetch(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d has status %s, cannot cancel", id, appt.Status)
		return ErrCannotCancel
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		s.logger.Error("Cancel: failed to update status for id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.GoogleCalendarEventID != nil {
		err := s.calendar.DeleteEvent(ctx, *appt.GoogleCalendarEventID)
		if err != nil && !errors.Is(err, googlecalendar.ErrEventNotFound) {
			s.logger.Warn("Cancel: failed to delete calendar event %s for id=%d: %v",
				*appt.GoogleCalendarEventID, id, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// SetTransferred отмечает заявку перенесенной в CMS (или снимает отметку)
func (s *Service) SetTransferred(ctx context.Context, id int64, transferred bool) (*models.AppointmentResponse, error) {
	s.logger.Info("SetTransferred: marking appointment id=%d transferred=%v", id, transferred)

	if err := s.apptRepo.SetTransferred(ctx, id, transferred); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("SetTransferred: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("SetTransferred: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SetTransferred - repository error: %v", ErrInternal, err)
	}

	appt, err := s.fetch(ctx, "SetTransferred", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// fetch читает заявку из репозитория, транслируя ошибки сервисного слоя
func (s *Service) fetch(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return appt, nil
}
