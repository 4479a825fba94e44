package careers

import (
	"testing"
	"time"
)

func TestTenureMonthsSpansStints(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		records []Career
		want    int
	}{
		{
			name: "single closed stint",
			records: []Career{
				{StartDate: "2020-04", EndDate: "2023-04", Status: StatusLeft},
			},
			want: 36,
		},
		{
			name: "current stint runs to now",
			records: []Career{
				{StartDate: "2024-01", Status: StatusCurrent},
			},
			want: 5,
		},
		{
			name: "multiple stints span earliest to latest",
			records: []Career{
				{StartDate: "2019-04", EndDate: "2021-03", Status: StatusLeft},
				{StartDate: "2021-04", Status: StatusCurrent},
			},
			want: 62,
		},
		{
			name: "same month start and end",
			records: []Career{
				{StartDate: "2024-06", Status: StatusCurrent},
			},
			want: 0,
		},
		{
			name:    "no parseable records",
			records: []Career{{StartDate: "bogus", Status: StatusCurrent}},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TenureMonths(tt.records, now); got != tt.want {
				t.Fatalf("TenureMonths = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatTenure(t *testing.T) {
	tests := []struct {
		months int
		want   string
	}{
		{0, "1ヶ月未満"},
		{1, "1ヶ月"},
		{11, "11ヶ月"},
		{12, "1年"},
		{13, "1年1ヶ月"},
		{62, "5年2ヶ月"},
	}

	for _, tt := range tests {
		if got := FormatTenure(tt.months); got != tt.want {
			t.Fatalf("FormatTenure(%d) = %q, want %q", tt.months, got, tt.want)
		}
	}
}
