package importer

import (
	"reflect"
	"testing"
	"time"
)

func TestParseClockDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "empty", input: "", want: 0},
		{name: "hours minutes seconds", input: "01:30:15", want: 5_415_000},
		{name: "hours minutes", input: "1:05", want: 3_900_000},
		{name: "long duration", input: "95:00:00", want: 342_000_000},
		{name: "negative", input: "-1:00:00", wantErr: true},
		{name: "invalid", input: "abc", wantErr: true},
		{name: "too many parts", input: "1:2:3:4", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseClockDuration(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("unexpected duration for %q: want %d, got %d", tc.input, tc.want, got)
			}
		})
	}
}

func TestParseDateAndTime(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CET", 3600)
	got, err := parseDateAndTime("2024-03-07", "09:15:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 7, 9, 15, 0, 0, loc)) {
		t.Fatalf("unexpected time: %v", got)
	}

	if _, err := parseDateAndTime("", "09:00", loc); err == nil {
		t.Fatalf("expected error for missing date")
	}
	if _, err := parseDateAndTime("7 March", "09:00", loc); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestSplitTags(t *testing.T) {
	t.Parallel()

	if got := splitTags(" docs, review ,,"); !reflect.DeepEqual(got, []string{"docs", "review"}) {
		t.Fatalf("unexpected tags: %q", got)
	}
	if got := splitTags(""); len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil tags, got %#v", got)
	}
}
