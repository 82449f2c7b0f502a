package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2024, time.March, 0), New(2024, time.February, 29); got != want {
		t.Errorf("New(2024, March, 0) = %v, want %v", got, want)
	}
	if got, want := New(2023, time.December, 32), New(2024, time.January, 1); got != want {
		t.Errorf("New(2023, December, 32) = %v, want %v", got, want)
	}
}

func TestDaysInMonth(t *testing.T) {
	testCases := []struct {
		in   Date
		want int
	}{
		{New(2024, time.January, 15), 31},
		{New(2024, time.February, 3), 29},
		{New(2023, time.February, 3), 28},
		{New(2024, time.April, 30), 30},
	}
	for _, tc := range testCases {
		if got := tc.in.DaysInMonth(); got != tc.want {
			t.Errorf("%v.DaysInMonth() = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-01-15", New(2024, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{" 2025-07-01 ", New(2025, time.July, 1), false},
		{"15/01/2024", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	type holder struct {
		On  Date `json:"on"`
		Off Date `json:"off"`
	}
	in := holder{On: New(2024, time.March, 14)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if got, want := string(data), `{"on":"2024-03-14","off":""}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}
	var out holder
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out != in {
		t.Errorf("json.Unmarshal() = %v, want %v", out, in)
	}
}

func TestMax(t *testing.T) {
	a, b := New(2024, time.January, 1), New(2024, time.January, 15)
	if got := Max(a, b); got != b {
		t.Errorf("Max(%v, %v) = %v", a, b, got)
	}
	if got := Max(b, a); got != b {
		t.Errorf("Max(%v, %v) = %v", b, a, got)
	}
}
