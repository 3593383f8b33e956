package i18n

import (
	"testing"
	"testing/fstest"
	"time"
)

func TestNewManagerLoadsEmbeddedLocales(t *testing.T) {
	t.Parallel()

	manager, err := NewManager("ru")
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	if manager.DefaultLanguage() != LangRU {
		t.Fatalf("expected default language ru, got %q", manager.DefaultLanguage())
	}
	supported := manager.SupportedLanguages()
	if len(supported) != 2 || supported[0] != LangEN || supported[1] != LangRU {
		t.Fatalf("expected [en ru], got %v", supported)
	}
}

func TestNewManagerFallsBackToEnglishDefault(t *testing.T) {
	t.Parallel()

	manager, err := NewManager("de")
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}
	if manager.DefaultLanguage() != LangEN {
		t.Fatalf("expected fallback default en, got %q", manager.DefaultLanguage())
	}
}

func TestNewManagerFromFSRequiresEnglish(t *testing.T) {
	t.Parallel()

	source := fstest.MapFS{
		"ru.json": &fstest.MapFile{Data: []byte(`{"calendar.title":"%s %d"}`)},
	}
	if _, err := NewManagerFromFS("ru", source); err == nil {
		t.Fatal("expected error for missing en locale")
	}

	empty := fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{}`)},
	}
	if _, err := NewManagerFromFS("en", empty); err == nil {
		t.Fatal("expected error for empty locale")
	}
}

func TestDetectFromAcceptLanguage(t *testing.T) {
	t.Parallel()

	manager, err := NewManager("en")
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	testCases := []struct {
		header string
		want   string
	}{
		{header: "ru-RU,ru;q=0.9,en;q=0.8", want: LangRU},
		{header: "de-DE, en_GB;q=0.7", want: LangEN},
		{header: "fr", want: LangEN},
		{header: "en;q=0.4, ru-UA;q=0.9", want: LangRU},
		{header: "not a header;;", want: LangEN},
		{header: "", want: LangEN},
	}

	for _, testCase := range testCases {
		if got := manager.DetectFromAcceptLanguage(testCase.header); got != testCase.want {
			t.Fatalf("DetectFromAcceptLanguage(%q): expected %q, got %q", testCase.header, testCase.want, got)
		}
	}
}

func TestCalendarLabels(t *testing.T) {
	t.Parallel()

	manager, err := NewManager("en")
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	if got := manager.MonthTitle("en", 2026, time.March); got != "March 2026" {
		t.Fatalf("expected March 2026, got %q", got)
	}
	if got := manager.MonthTitle("ru", 2026, time.March); got != "Март 2026" {
		t.Fatalf("expected Март 2026, got %q", got)
	}
	weekdays := manager.WeekdayNames("en")
	if len(weekdays) != 7 || weekdays[0] != "Sun" || weekdays[6] != "Sat" {
		t.Fatalf("unexpected weekday names %v", weekdays)
	}
	if got := manager.Translate("ru", "missing.key"); got != "missing.key" {
		t.Fatalf("expected missing key echoed back, got %q", got)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	t.Parallel()

	manager, err := NewManager("ru")
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	testCases := map[string]string{
		"EN-gb": LangEN,
		"ru_RU": LangRU,
		" en ":  LangEN,
		"de":    LangRU,
		"":      LangRU,
	}
	for raw, want := range testCases {
		if got := manager.NormalizeLanguage(raw); got != want {
			t.Fatalf("NormalizeLanguage(%q): expected %q, got %q", raw, want, got)
		}
	}
}
