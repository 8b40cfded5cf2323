package availability

import (
	"strings"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// KeywordClassifier классификатор событий по ключевым словам в summary.
// Реализация по умолчанию для EventClassifier
type KeywordClassifier struct {
	markerKeyword      string
	personalKeywords   []string
	adminBlockKeywords []string
	adminBlockPrefix   string
	blockedColorID     string
}

// NewKeywordClassifier создает классификатор с переданными словарями
func NewKeywordClassifier(markerKeyword string, personalKeywords, adminBlockKeywords []string, adminBlockPrefix string) *KeywordClassifier {
	return &KeywordClassifier{
		markerKeyword:      strings.ToUpper(strings.TrimSpace(markerKeyword)),
		personalKeywords:   lowerAll(personalKeywords),
		adminBlockKeywords: lowerAll(adminBlockKeywords),
		adminBlockPrefix:   adminBlockPrefix,
		blockedColorID:     domain.BlockedColorID,
	}
}

// NewDefaultClassifier создает классификатор со словарями по умолчанию
func NewDefaultClassifier() *KeywordClassifier {
	return NewKeywordClassifier(
		domain.MarkerKeyword,
		domain.PersonalKeywords,
		domain.AdminBlockKeywords,
		domain.AdminBlockPrefix,
	)
}

// IsMarker распознает маркер продления часов: summary равен ключевому слову
// или начинается с "<KEYWORD>:" / "<KEYWORD> " (регистронезависимо, с trim)
func (c *KeywordClassifier) IsMarker(event *domain.CalendarEvent) bool {
	if event.Summary == "" {
		return false
	}
	summary := strings.ToUpper(strings.TrimSpace(event.Summary))
	return summary == c.markerKeyword ||
		strings.HasPrefix(summary, c.markerKeyword+":") ||
		strings.HasPrefix(summary, c.markerKeyword+" ")
}

// IsPersonal распознает личное событие по вхождению любого из ключевых слов
func (c *KeywordClassifier) IsPersonal(event *domain.CalendarEvent) bool {
	if event.Summary == "" {
		return false
	}
	summary := strings.ToLower(event.Summary)
	for _, keyword := range c.personalKeywords {
		if strings.Contains(summary, keyword) {
			return true
		}
	}
	return false
}

// IsAdminBlock распознает административную блокировку: префикс в summary,
// зарезервированный цвет или ключевое слово
func (c *KeywordClassifier) IsAdminBlock(event *domain.CalendarEvent) bool {
	if strings.HasPrefix(event.Summary, c.adminBlockPrefix) {
		return true
	}
	if event.ColorID == c.blockedColorID {
		return true
	}
	summary := strings.ToLower(event.Summary)
	for _, keyword := range c.adminBlockKeywords {
		if strings.Contains(summary, keyword) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
