package models

import (
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// Request модели

// UpsertRuleRequest запрос на установку правила рабочих часов дня недели
type UpsertRuleRequest struct {
	DayOfWeek int    `json:"dayOfWeek"`          // 0=воскресенье .. 6=суббота
	StartTime string `json:"startTime"`          // HH:MM
	EndTime   string `json:"endTime"`            // HH:MM
	IsActive  *bool  `json:"isActive,omitempty"` // nil = true
}

// Response модели

// RuleResponse ответ с правилом рабочих часов
type RuleResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	DayName   string `json:"dayName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

var dayNames = [7]string{"Zondag", "Maandag", "Dinsdag", "Woensdag", "Donderdag", "Vrijdag", "Zaterdag"}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.WorkingHoursRule) *RuleResponse {
	if r == nil {
		return nil
	}

	name := ""
	if r.DayOfWeek >= 0 && r.DayOfWeek < len(dayNames) {
		name = dayNames[r.DayOfWeek]
	}

	return &RuleResponse{
		ID:        r.ID,
		DayOfWeek: r.DayOfWeek,
		DayName:   name,
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
		IsActive:  r.IsActive,
	}
}

// FromDomainRules конвертирует список domain моделей в DTO
func FromDomainRules(rules []*domain.WorkingHoursRule) *RuleListResponse {
	out := &RuleListResponse{Rules: make([]RuleResponse, 0, len(rules))}
	for _, r := range rules {
		if resp := FromDomainRule(r); resp != nil {
			out.Rules = append(out.Rules, *resp)
		}
	}
	return out
}
