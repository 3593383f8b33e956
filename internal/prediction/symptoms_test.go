package prediction

import "testing"

func TestAdjustmentDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		entries []SymptomLogEntry
		want    int
	}{
		{name: "no entries", entries: nil, want: 0},
		{name: "unrelated moods", entries: []SymptomLogEntry{{Label: "Happy"}, {Label: "Cramps"}}, want: 0},
		{name: "bloating", entries: []SymptomLogEntry{{Label: "bloating"}}, want: 1},
		{name: "tender breasts", entries: []SymptomLogEntry{{Label: "tender breasts"}}, want: 2},
		{name: "case insensitive", entries: []SymptomLogEntry{{Label: "TENDER Breasts"}}, want: 2},
		{name: "surrounding whitespace", entries: []SymptomLogEntry{{Label: "  Bloating "}}, want: 1},
		{name: "both present bloating first", entries: []SymptomLogEntry{{Label: "Bloating"}, {Label: "Tender breasts"}}, want: 2},
		{name: "both present tender first", entries: []SymptomLogEntry{{Label: "Tender breasts"}, {Label: "Bloating"}}, want: 2},
		{name: "repeated bloating", entries: []SymptomLogEntry{{Label: "bloating"}, {Label: "bloating"}}, want: 1},
		{name: "partial label does not match", entries: []SymptomLogEntry{{Label: "mild bloating"}}, want: 0},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if got := AdjustmentDays(testCase.entries); got != testCase.want {
				t.Fatalf("expected adjustment %d, got %d", testCase.want, got)
			}
		})
	}
}

func TestEntriesFromLabels(t *testing.T) {
	t.Parallel()

	entries := EntriesFromLabels([]string{"Bloating", "Sad"})
	if len(entries) != 2 || entries[0].Label != "Bloating" || entries[1].Label != "Sad" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}
