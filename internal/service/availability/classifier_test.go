package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

func TestKeywordClassifierIsMarker(t *testing.T) {
	classifier := NewDefaultClassifier()

	cases := []struct {
		summary string
		marker  bool
	}{
		{"VRIJ", true},
		{"vrij", true},
		{"  VRIJ  ", true},
		{"VRIJ: extra avond", true},
		{"vrij avonduren", true},
		{"VRIJDAG", false}, // префикс без разделителя не считается маркером
		{"Afspraak - Jan", false},
		{"", false},
	}

	for _, tc := range cases {
		event := domain.CalendarEvent{Summary: tc.summary}
		assert.Equal(t, tc.marker, classifier.IsMarker(&event), "summary %q", tc.summary)
	}
}

func TestKeywordClassifierIsPersonal(t *testing.T) {
	classifier := NewDefaultClassifier()

	cases := []struct {
		summary  string
		personal bool
	}{
		{"Privé lunch", true},
		{"prive afspraak", true},
		{"Personal appointment", true},
		{"PRIVATE", true},
		{"Eigen tijd", true},
		{"Afspraak - Jan", false},
		{"", false},
	}

	for _, tc := range cases {
		event := domain.CalendarEvent{Summary: tc.summary}
		assert.Equal(t, tc.personal, classifier.IsPersonal(&event), "summary %q", tc.summary)
	}
}

func TestKeywordClassifierIsAdminBlock(t *testing.T) {
	classifier := NewDefaultClassifier()

	assert.True(t, classifier.IsAdminBlock(&domain.CalendarEvent{Summary: "🚫 geen afspraken"}))
	assert.True(t, classifier.IsAdminBlock(&domain.CalendarEvent{Summary: "tijd blocked"}))
	assert.True(t, classifier.IsAdminBlock(&domain.CalendarEvent{Summary: "Unavailable vanmiddag"}))
	assert.True(t, classifier.IsAdminBlock(&domain.CalendarEvent{Summary: "wat dan ook", ColorID: domain.BlockedColorID}))
	assert.False(t, classifier.IsAdminBlock(&domain.CalendarEvent{Summary: "Afspraak - Jan"}))
}

func TestKeywordClassifierCustomVocabulary(t *testing.T) {
	classifier := NewKeywordClassifier("OPEN", []string{"lunch"}, []string{"gesloten"}, "!!")

	assert.True(t, classifier.IsMarker(&domain.CalendarEvent{Summary: "open: extra"}))
	assert.False(t, classifier.IsMarker(&domain.CalendarEvent{Summary: "VRIJ"}))
	assert.True(t, classifier.IsPersonal(&domain.CalendarEvent{Summary: "Lunch met Anna"}))
	assert.True(t, classifier.IsAdminBlock(&domain.CalendarEvent{Summary: "!! niet boeken"}))
	assert.True(t, classifier.IsAdminBlock(&domain.CalendarEvent{Summary: "praktijk GESLOTEN"}))
}
