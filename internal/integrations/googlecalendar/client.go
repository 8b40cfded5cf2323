package googlecalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

const defaultBaseURL = "https://www.googleapis.com/calendar/v3"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// accessTokenSource источник access token (для тестов подменяется статическим)
type accessTokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client клиент Google Calendar API v3.
// Читает события из всех настроенных календарей, пишет в первый (primary)
type Client struct {
	baseURL     string
	calendarIDs []string
	timeZone    string
	tokens      accessTokenSource
	httpClient  *http.Client
	log         Logger
}

// NewClient создает клиент Google Calendar с аутентификацией сервисного аккаунта
func NewClient(calendarIDs []string, credentialsFile string, timeZone string, timeout time.Duration, log Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	tokens, err := newTokenSource(credentialsFile, httpClient)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:     defaultBaseURL,
		calendarIDs: calendarIDs,
		timeZone:    timeZone,
		tokens:      tokens,
		httpClient:  httpClient,
		log:         log,
	}, nil
}

// primaryCalendarID календарь для создания событий
func (c *Client) primaryCalendarID() string {
	return c.calendarIDs[0]
}

// ListEvents получает события всех календарей за период [from, to].
// Календари опрашиваются параллельно; сбой отдельного календаря деградирует
// его до пустого списка, сбой всех календарей возвращается как ошибка.
// Результат стабильно отсортирован по времени начала
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	type fetchResult struct {
		events []domain.CalendarEvent
		err    error
	}

	results := make([]fetchResult, len(c.calendarIDs))

	var wg sync.WaitGroup
	for i, calendarID := range c.calendarIDs {
		wg.Add(1)
		go func(i int, calendarID string) {
			defer wg.Done()
			events, err := c.listCalendarEvents(ctx, token, calendarID, from, to)
			results[i] = fetchResult{events: events, err: err}
		}(i, calendarID)
	}
	wg.Wait()

	var all []domain.CalendarEvent
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			c.log.Error("ListEvents: calendar %s failed: %v", c.calendarIDs[i], res.err)
			continue
		}
		all = append(all, res.events...)
	}

	if failed == len(c.calendarIDs) {
		return nil, fmt.Errorf("%w: %d calendars", ErrAllCalendarsFailed, failed)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start.Before(all[j].Start)
	})

	c.log.Info("ListEvents: fetched %d events from %d calendars (%d failed)",
		len(all), len(c.calendarIDs), failed)

	return all, nil
}

func (c *Client) listCalendarEvents(ctx context.Context, token, calendarID string, from, to time.Time) ([]domain.CalendarEvent, error) {
	query := url.Values{}
	query.Set("timeMin", from.Format(time.RFC3339))
	query.Set("timeMax", to.Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")
	query.Set("maxResults", "2500")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s",
		c.baseURL, url.PathEscape(calendarID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var list eventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	events := make([]domain.CalendarEvent, 0, len(list.Items))
	for i := range list.Items {
		events = append(events, list.Items[i].ToDomain(calendarID))
	}

	return events, nil
}

// CreateAppointment создает событие-приём в primary календаре
func (c *Client) CreateAppointment(ctx context.Context, appt AppointmentEvent) (*Event, error) {
	phone := appt.ClientPhone
	if phone == "" {
		phone = "Niet opgegeven"
	}

	description := fmt.Sprintf("Klant - %s\nBehandeling - %s\nE-mail - %s\nTelefoonnummer - %s",
		appt.ClientName, appt.TreatmentName, appt.ClientEmail, phone)
	if appt.Message != "" {
		description += "\n\nNotities:\n" + appt.Message
	}

	event := &Event{
		Summary:     fmt.Sprintf("%s - %s", appt.TreatmentName, appt.ClientName),
		Description: description,
		ColorID:     domain.AppointmentColorID,
		Status:      "confirmed",
		Start: &EventDateTime{
			DateTime: appt.Start.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		End: &EventDateTime{
			DateTime: appt.End.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		Attendees: []Attendee{
			{Email: appt.ClientEmail, DisplayName: appt.ClientName},
		},
	}

	return c.insertEvent(ctx, event)
}

// CreateBlockedTime создает событие административной блокировки времени
func (c *Client) CreateBlockedTime(ctx context.Context, start, end time.Time, reason string) (*Event, error) {
	if reason == "" {
		reason = "Geblokkeerd"
	}

	event := &Event{
		Summary:     fmt.Sprintf("%s %s", domain.AdminBlockPrefix, reason),
		Description: "Tijd geblokkeerd: " + reason,
		ColorID:     domain.BlockedColorID,
		Status:      "confirmed",
		Start: &EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		End: &EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
	}

	return c.insertEvent(ctx, event)
}

func (c *Client) insertEvent(ctx context.Context, event *Event) (*Event, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events?sendUpdates=none",
		c.baseURL, url.PathEscape(c.primaryCalendarID()))

	created, err := c.doEventRequest(ctx, http.MethodPost, endpoint, event)
	if err != nil {
		return nil, err
	}

	c.log.Info("insertEvent: created event id=%s summary=%q", created.ID, created.Summary)
	return created, nil
}

// UpdateEvent частично обновляет событие в primary календаре
func (c *Client) UpdateEvent(ctx context.Context, eventID string, patch *Event) (*Event, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s?sendUpdates=none",
		c.baseURL, url.PathEscape(c.primaryCalendarID()), url.PathEscape(eventID))

	return c.doEventRequest(ctx, http.MethodPatch, endpoint, patch)
}

// DeleteEvent удаляет событие из primary календаря
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(c.primaryCalendarID()), url.PathEscape(eventID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound, http.StatusGone:
		return ErrEventNotFound
	default:
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}
}

func (c *Client) doEventRequest(ctx context.Context, method, endpoint string, event *Event) (*Event, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusGone:
		return nil, ErrEventNotFound
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var result Event
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}
