package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	workinghoursRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/workinghours"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/metrics"
)

// Params настройки бронирования сервиса доступности
type Params struct {
	SlotIntervalMinutes    int
	BufferMinutes          int
	QuickSlotCount         int
	QuickPickHorizonMonths int
}

// Service сервис расчёта доступности: объединяет правила рабочих часов
// из хранилища с событиями внешнего календаря и выдает свободные слоты.
// Состояние не персистится - каждый запрос вычисляется заново
type Service struct {
	gateway    CalendarGateway
	rules      RuleRepository
	cache      *RuleCache
	classifier EventClassifier
	clock      TimeProvider
	loc        *time.Location
	params     Params
	metrics    *metrics.Metrics
	log        Logger
}

// NewService создает сервис доступности.
// metrics может быть nil - тогда метрики не записываются
func NewService(
	gateway CalendarGateway,
	rules RuleRepository,
	cache *RuleCache,
	classifier EventClassifier,
	clock TimeProvider,
	loc *time.Location,
	params Params,
	m *metrics.Metrics,
	log Logger,
) *Service {
	if params.SlotIntervalMinutes <= 0 {
		params.SlotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if params.BufferMinutes < 0 {
		params.BufferMinutes = domain.DefaultBufferMinutes
	}
	if params.QuickSlotCount <= 0 {
		params.QuickSlotCount = domain.DefaultQuickSlotCount
	}
	if params.QuickPickHorizonMonths <= 0 {
		params.QuickPickHorizonMonths = domain.DefaultQuickPickHorizonMonths
	}

	return &Service{
		gateway:    gateway,
		rules:      rules,
		cache:      cache,
		classifier: classifier,
		clock:      clock,
		loc:        loc,
		params:     params,
		metrics:    m,
		log:        log,
	}
}

// ClearRuleCache сбрасывает кэш правил рабочих часов.
// Вызывается сервисом рабочих часов при каждом изменении правил
func (s *Service) ClearRuleCache() {
	s.cache.Clear()
	s.log.Info("ClearRuleCache: working hours cache cleared")
}

// GetDayAvailability вычисляет свободные слоты одного дня.
//
// Прошедшие даты и сегодня отклоняются до обращения к календарю:
// бронирование день-в-день не принимается. Ошибка шлюза календаря
// возвращается как ошибка, а не пустой список слотов
func (s *Service) GetDayAvailability(ctx context.Context, date time.Time, opts Options) (*DayAvailability, error) {
	duration, buffer, err := s.resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	day := s.normalizeDate(date)
	dateStr := day.Format(domain.DateFormat)

	if !s.isBookable(day) {
		s.log.Debug("GetDayAvailability: date not bookable, skipping calendar fetch: %s", dateStr)
		return &DayAvailability{Date: dateStr, Status: domain.DayStatusClosed, Slots: []domain.TimeSlot{}}, nil
	}

	events, err := s.fetchEvents(ctx, day, day)
	if err != nil {
		return nil, err
	}

	result, _, err := s.computeDay(ctx, day, filterDayEvents(events, day, s.loc), duration, buffer, false)
	if err != nil {
		return nil, err
	}

	s.observe("day", result.Status)
	s.log.Info("GetDayAvailability: date: %s, status: %s, slots: %d", dateStr, result.Status, len(result.Slots))
	return result, nil
}

// GetMonthAvailability вычисляет флаг доступности для каждого дня месяца.
//
// События всего месяца читаются одним batch-запросом, затем фильтруются
// по дням локально - иначе месяц стоил бы ~30 обращений к календарю.
// Для каждого дня расчёт прерывается на первом свободном слоте: месячному
// виду нужен только факт наличия доступности
func (s *Service) GetMonthAvailability(ctx context.Context, year int, month time.Month, opts Options) (map[string]bool, error) {
	duration, buffer, err := s.resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be in range 1-12, got %d", ErrInvalidInput, int(month))
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	events, err := s.fetchEvents(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	availability := make(map[string]bool)
	daysInMonth := monthEnd.Day()

	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		date := time.Date(year, month, dayNum, 0, 0, 0, 0, s.loc)
		dateStr := date.Format(domain.DateFormat)

		if !s.isBookable(date) {
			availability[dateStr] = false
			continue
		}

		result, _, err := s.computeDay(ctx, date, filterDayEvents(events, date, s.loc), duration, buffer, true)
		if err != nil {
			return nil, err
		}
		availability[dateStr] = result.HasAvailability()
	}

	s.observe("month", domain.DayStatusOpen)
	s.log.Info("GetMonthAvailability: month: %d-%02d, days: %d", year, int(month), daysInMonth)
	return availability, nil
}

// FindNextSlots ищет первые count свободных слотов, сканируя дни вперёд
// начиная с завтра. Горизонт поиска ограничен QuickPickHorizonMonths;
// события читаются помесячными batch-запросами по мере продвижения
func (s *Service) FindNextSlots(ctx context.Context, opts Options, count int) ([]domain.QuickSlot, error) {
	duration, buffer, err := s.resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = s.params.QuickSlotCount
	}
	if count > domain.MaxQuickSlotCount {
		count = domain.MaxQuickSlotCount
	}

	today := s.normalizeDate(s.clock.Now())
	horizon := today.AddDate(0, s.params.QuickPickHorizonMonths, 0)

	var (
		found       []domain.QuickSlot
		batchEvents []domain.CalendarEvent
		batchYear   int
		batchMonth  time.Month
		batchLoaded bool
	)

	for date := today.AddDate(0, 0, 1); !date.After(horizon) && len(found) < count; date = date.AddDate(0, 0, 1) {
		year, month, _ := date.Date()
		if !batchLoaded || year != batchYear || month != batchMonth {
			monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
			monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

			batchEvents, err = s.fetchEvents(ctx, monthStart, monthEnd)
			if err != nil {
				return nil, err
			}
			batchYear, batchMonth, batchLoaded = year, month, true
		}

		result, _, err := s.computeDay(ctx, date, filterDayEvents(batchEvents, date, s.loc), duration, buffer, false)
		if err != nil {
			return nil, err
		}

		for _, slot := range result.Slots {
			if !slot.Available {
				continue
			}
			found = append(found, domain.QuickSlot{
				Date:  result.Date,
				Time:  slot.Time,
				Label: dayLabel(date, today),
			})
			if len(found) >= count {
				break
			}
		}
	}

	s.observe("quick", domain.DayStatusOpen)
	s.log.Info("FindNextSlots: requested: %d, found: %d", count, len(found))
	return found, nil
}

// DebugDayAvailability полная диагностика расчёта одного дня.
// Повторяет продакшеновый путь, но собирает все промежуточные результаты
func (s *Service) DebugDayAvailability(ctx context.Context, date time.Time, opts Options) (*DayDebug, error) {
	duration, buffer, err := s.resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	day := s.normalizeDate(date)
	debug := &DayDebug{
		Date:           day.Format(domain.DateFormat),
		DayOfWeek:      day.Weekday().String(),
		MarkerEvents:   []EventDebug{},
		Events:         []EventDebug{},
		BlockingEvents: []EventDebug{},
		Slots:          []SlotDebug{},
	}

	if !s.isBookable(day) {
		debug.Status = domain.DayStatusClosed
		debug.Message = "datum ligt in het verleden of is vandaag"
		return debug, nil
	}

	events, err := s.fetchEvents(ctx, day, day)
	if err != nil {
		return nil, err
	}

	result, comp, err := s.computeDay(ctx, day, filterDayEvents(events, day, s.loc), duration, buffer, false)
	if err != nil {
		return nil, err
	}

	debug.Status = result.Status
	if comp.rule != nil {
		debug.WorkingHours = &domain.TimeWindow{Start: comp.rule.StartTime, End: comp.rule.EndTime}
	}
	if comp.windowOK {
		debug.EffectiveWindow = &comp.window
	}
	for i := range comp.markers {
		debug.MarkerEvents = append(debug.MarkerEvents, eventDebug(&comp.markers[i], s.loc))
	}
	for i := range comp.events {
		debug.Events = append(debug.Events, eventDebug(&comp.events[i], s.loc))
	}
	for i := range comp.blocking {
		debug.BlockingEvents = append(debug.BlockingEvents, eventDebug(&comp.blocking[i], s.loc))
	}
	for i, slot := range result.Slots {
		sd := SlotDebug{
			Time:      slot.Time.String(),
			Available: slot.Available,
			IsBlocked: slot.IsBlocked,
		}
		if conflict := comp.conflicts[i]; conflict != nil {
			ed := eventDebug(conflict, s.loc)
			sd.ConflictingEvent = &ed
		}
		debug.Slots = append(debug.Slots, sd)
	}

	return debug, nil
}

// DebugMonthAvailability диагностика месячного расчёта: DayDebug по каждому дню
func (s *Service) DebugMonthAvailability(ctx context.Context, year int, month time.Month, opts Options) ([]DayDebug, error) {
	duration, buffer, err := s.resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be in range 1-12, got %d", ErrInvalidInput, int(month))
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	events, err := s.fetchEvents(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	var days []DayDebug
	for dayNum := 1; dayNum <= monthEnd.Day(); dayNum++ {
		date := time.Date(year, month, dayNum, 0, 0, 0, 0, s.loc)
		debug := DayDebug{
			Date:           date.Format(domain.DateFormat),
			DayOfWeek:      date.Weekday().String(),
			MarkerEvents:   []EventDebug{},
			Events:         []EventDebug{},
			BlockingEvents: []EventDebug{},
			Slots:          []SlotDebug{},
		}

		if !s.isBookable(date) {
			debug.Status = domain.DayStatusClosed
			debug.Message = "datum ligt in het verleden of is vandaag"
			days = append(days, debug)
			continue
		}

		result, comp, err := s.computeDay(ctx, date, filterDayEvents(events, date, s.loc), duration, buffer, false)
		if err != nil {
			return nil, err
		}

		debug.Status = result.Status
		if comp.rule != nil {
			debug.WorkingHours = &domain.TimeWindow{Start: comp.rule.StartTime, End: comp.rule.EndTime}
		}
		if comp.windowOK {
			debug.EffectiveWindow = &comp.window
		}
		for i := range comp.markers {
			debug.MarkerEvents = append(debug.MarkerEvents, eventDebug(&comp.markers[i], s.loc))
		}
		for i := range comp.blocking {
			debug.BlockingEvents = append(debug.BlockingEvents, eventDebug(&comp.blocking[i], s.loc))
		}
		for i, slot := range result.Slots {
			sd := SlotDebug{Time: slot.Time.String(), Available: slot.Available, IsBlocked: slot.IsBlocked}
			if conflict := comp.conflicts[i]; conflict != nil {
				ed := eventDebug(conflict, s.loc)
				sd.ConflictingEvent = &ed
			}
			debug.Slots = append(debug.Slots, sd)
		}
		days = append(days, debug)
	}

	return days, nil
}

// dayComputation промежуточные результаты расчёта дня для диагностики
type dayComputation struct {
	rule      *domain.WorkingHoursRule
	events    []domain.CalendarEvent
	markers   []domain.CalendarEvent
	blocking  []domain.CalendarEvent
	window    domain.TimeWindow
	windowOK  bool
	conflicts []*domain.CalendarEvent // индекс соответствует слоту результата
}

// computeDay общее ядро дневного и месячного расчёта.
//
// Шаги: правило дня недели (через кэш) -> разделение событий на маркеры
// и блокирующие -> эффективное окно -> генерация слотов -> проверка
// конфликтов. При earlyExit расчёт останавливается на первом свободном
// слоте - результат HasAvailability при этом совпадает с полным расчётом
func (s *Service) computeDay(
	ctx context.Context,
	date time.Time,
	dayEvents []domain.CalendarEvent,
	duration, buffer int,
	earlyExit bool,
) (*DayAvailability, *dayComputation, error) {
	dateStr := date.Format(domain.DateFormat)

	rule, err := s.workingHoursRule(ctx, int(date.Weekday()))
	if err != nil {
		return nil, nil, err
	}

	markers, blocking := partitionEvents(dayEvents, s.classifier)
	comp := &dayComputation{rule: rule, events: dayEvents, markers: markers, blocking: blocking}

	window, ok := effectiveWindow(rule, markers, date, s.loc)
	comp.window, comp.windowOK = window, ok
	if !ok || window.IsZero() {
		return &DayAvailability{Date: dateStr, Status: domain.DayStatusClosed, Slots: []domain.TimeSlot{}}, comp, nil
	}

	slotTimes := generateSlotTimes(window, duration, s.params.SlotIntervalMinutes)
	if len(slotTimes) == 0 {
		return &DayAvailability{Date: dateStr, Status: domain.DayStatusClosed, Slots: []domain.TimeSlot{}}, comp, nil
	}

	slots := make([]domain.TimeSlot, 0, len(slotTimes))
	anyAvailable := false

	for i, slotTime := range slotTimes {
		isLast := i == len(slotTimes)-1
		slotStart := slotTime.OnDate(date, s.loc)

		conflict := findConflict(slotStart, duration, buffer, isLast, blocking, s.classifier)
		comp.conflicts = append(comp.conflicts, conflict)

		slot := domain.TimeSlot{Time: slotTime, Available: conflict == nil}
		if conflict != nil {
			slot.IsBlocked = s.classifier.IsAdminBlock(conflict)
			slot.EventSummary = conflict.Summary
		} else {
			anyAvailable = true
		}
		slots = append(slots, slot)

		if earlyExit && anyAvailable {
			break
		}
	}

	status := domain.DayStatusExhausted
	if anyAvailable {
		status = domain.DayStatusOpen
	}

	return &DayAvailability{Date: dateStr, Status: status, Slots: slots}, comp, nil
}

// workingHoursRule читает правило дня недели через кэш.
// Отсутствие правила не является ошибкой: день без правила закрыт
// (если его не откроют события-маркеры)
func (s *Service) workingHoursRule(ctx context.Context, dayOfWeek int) (*domain.WorkingHoursRule, error) {
	if rule, found := s.cache.Get(dayOfWeek); found {
		return rule, nil
	}

	rule, err := s.rules.GetByDayOfWeek(ctx, dayOfWeek)
	if err != nil {
		if errors.Is(err, workinghoursRepo.ErrRuleNotFound) {
			s.cache.Set(dayOfWeek, nil)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: day %d: %v", ErrRuleStore, dayOfWeek, err)
	}

	s.cache.Set(dayOfWeek, rule)
	return rule, nil
}

// fetchEvents читает события календаря за период [from 00:00, to 23:59:59]
func (s *Service) fetchEvents(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, s.loc)

	fetchStart := time.Now()
	events, err := s.gateway.ListEvents(ctx, start, end)
	if s.metrics != nil {
		s.metrics.CalendarFetchDuration.Observe(time.Since(fetchStart).Seconds())
	}
	if err != nil {
		s.log.Error("fetchEvents: calendar fetch failed, period: %s - %s, err: %v",
			start.Format(domain.DateFormat), end.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	return events, nil
}

// resolveOptions валидирует опции и подставляет значения по умолчанию
func (s *Service) resolveOptions(opts Options) (duration, buffer int, err error) {
	duration = opts.TreatmentDuration
	if duration == 0 {
		duration = domain.DefaultTreatmentDuration
	}
	if duration < domain.MinTreatmentDurationMinutes || duration > domain.MaxTreatmentDurationMinutes {
		return 0, 0, fmt.Errorf("%w: treatment duration must be in range %d-%d minutes, got %d",
			ErrInvalidInput, domain.MinTreatmentDurationMinutes, domain.MaxTreatmentDurationMinutes, duration)
	}

	buffer = opts.BufferMinutes
	if buffer < 0 {
		buffer = s.params.BufferMinutes
	}
	if buffer > domain.MaxBufferMinutes {
		return 0, 0, fmt.Errorf("%w: buffer must be in range %d-%d minutes, got %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes, buffer)
	}

	return duration, buffer, nil
}

// normalizeDate усекает время до полуночи в таймзоне практики
func (s *Service) normalizeDate(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

// isBookable проверяет, принимает ли дата бронирования.
// Сегодня и прошлое не бронируются - практике нужно время на подготовку
func (s *Service) isBookable(date time.Time) bool {
	today := s.normalizeDate(s.clock.Now())
	return date.After(today)
}

func (s *Service) observe(kind string, status domain.DayStatus) {
	if s.metrics != nil {
		s.metrics.AvailabilityQueriesTotal.WithLabelValues(kind, string(status)).Inc()
	}
}

// dayLabel возвращает голландскую подпись быстрого слота.
// В пределах недели день недели однозначен, дальше - дата
func dayLabel(date, today time.Time) string {
	days := int(date.Sub(today).Hours() / 24)
	switch {
	case days == 1:
		return "Morgen"
	case days == 2:
		return "Overmorgen"
	case days <= 7:
		return dutchWeekdays[date.Weekday()]
	default:
		return fmt.Sprintf("%d %s", date.Day(), dutchMonthNames[date.Month()])
	}
}

var dutchWeekdays = map[time.Weekday]string{
	time.Sunday:    "Zondag",
	time.Monday:    "Maandag",
	time.Tuesday:   "Dinsdag",
	time.Wednesday: "Woensdag",
	time.Thursday:  "Donderdag",
	time.Friday:    "Vrijdag",
	time.Saturday:  "Zaterdag",
}

var dutchMonthNames = map[time.Month]string{
	time.January:   "januari",
	time.February:  "februari",
	time.March:     "maart",
	time.April:     "april",
	time.May:       "mei",
	time.June:      "juni",
	time.July:      "juli",
	time.August:    "augustus",
	time.September: "september",
	time.October:   "oktober",
	time.November:  "november",
	time.December:  "december",
}
