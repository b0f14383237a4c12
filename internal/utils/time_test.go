package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone Asia/Tokyo",
			timezone: "Asia/Tokyo",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDayOf(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	in := time.Date(2024, 3, 9, 23, 45, 0, 0, tokyo)
	got := DayOf(in)
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayOf() = %v, want %v", got, want)
	}
}

func TestToday(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 20:00 UTC on the 9th is already the 10th in Tokyo.
	now := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)
	got := Today(now, tokyo)
	if FormatDate(got) != "2024-03-10" {
		t.Errorf("Today() = %s, want 2024-03-10", FormatDate(got))
	}
	if FormatDate(Today(now, time.UTC)) != "2024-03-09" {
		t.Errorf("Today() in UTC should be 2024-03-09")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-01-31", "2024-01-31", false},
		{"2024-02-29", "2024-02-29", false},
		{"2023-02-29", "", true},
		{"31/01/2024", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, FormatDate(got), tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseDate(%q) location = %v, want UTC", tt.input, got.Location())
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 4 {
		t.Errorf("DaysBetween() = %d, want 4", got)
	}
	if got := DaysBetween(b, a); got != -4 {
		t.Errorf("DaysBetween() reversed = %d, want -4", got)
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") {
		t.Error("Local should be valid")
	}
	if !ValidateTimezone("UTC") {
		t.Error("UTC should be valid")
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("Mars/Olympus_Mons should be invalid")
	}
}
