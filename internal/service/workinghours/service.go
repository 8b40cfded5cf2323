package workinghours

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	rulesRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/workinghours"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/workinghours/models"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

// Service сервис управления правилами рабочих часов.
// Единственный писатель расписания практики: каждая мутация инвалидирует
// кэш правил движка доступности
type Service struct {
	rulesRepo   RuleRepository
	invalidator CacheInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(rulesRepo RuleRepository, invalidator CacheInvalidator, logger Logger) *Service {
	return &Service{
		rulesRepo:   rulesRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// List возвращает все активные правила рабочих часов
func (s *Service) List(ctx context.Context) (*models.RuleListResponse, error) {
	rules, err := s.rulesRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// GetByDayOfWeek возвращает активное правило для дня недели
func (s *Service) GetByDayOfWeek(ctx context.Context, dayOfWeek int) (*models.RuleResponse, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day of week must be in range 0-6, got %d", ErrInvalidInput, dayOfWeek)
	}

	rule, err := s.rulesRepo.GetByDayOfWeek(ctx, dayOfWeek)
	if err != nil {
		if errors.Is(err, rulesRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetByDayOfWeek: repository error for day=%d: %v", dayOfWeek, err)
		return nil, fmt.Errorf("%w: GetByDayOfWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule), nil
}

// Upsert устанавливает правило рабочих часов для дня недели.
// Предыдущее активное правило этого дня деактивируется
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Upsert: setting working hours for day=%d: %s - %s", req.DayOfWeek, req.StartTime, req.EndTime)

	rule, err := s.validateRule(req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.rulesRepo.Upsert(ctx, rule)
	if err != nil {
		s.logger.Error("Upsert: repository error for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.invalidator.ClearRuleCache()
	s.logger.Info("Upsert: successfully saved rule id=%d for day=%d", saved.ID, saved.DayOfWeek)
	return models.FromDomainRule(saved), nil
}

// Deactivate снимает правило рабочих часов с дня недели.
// День остается бронируемым только через события-маркеры в календаре
func (s *Service) Deactivate(ctx context.Context, dayOfWeek int) error {
	s.logger.Info("Deactivate: deactivating working hours for day=%d", dayOfWeek)

	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("%w: day of week must be in range 0-6, got %d", ErrInvalidInput, dayOfWeek)
	}

	if err := s.rulesRepo.Deactivate(ctx, dayOfWeek); err != nil {
		if errors.Is(err, rulesRepo.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		s.logger.Error("Deactivate: repository error for day=%d: %v", dayOfWeek, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.invalidator.ClearRuleCache()
	s.logger.Info("Deactivate: successfully deactivated rules for day=%d", dayOfWeek)
	return nil
}

// validateRule проверяет запрос и конвертирует его в domain модель
func (s *Service) validateRule(req *models.UpsertRuleRequest) (*domain.WorkingHoursRule, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day of week must be in range 0-6, got %d", ErrInvalidInput, req.DayOfWeek)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q: %v", ErrInvalidInput, req.StartTime, err)
	}

	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q: %v", ErrInvalidInput, req.EndTime, err)
	}

	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidInput, start, end)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &domain.WorkingHoursRule{
		DayOfWeek: req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		IsActive:  isActive,
	}, nil
}
