package services

import (
	"math"
	"testing"
)

func TestEffectiveHourlyRate(t *testing.T) {
	tests := []struct {
		name         string
		rec          *LaborRecord
		monthlyHours float64
		expect       float64
	}{
		{"explicit rate wins", &LaborRecord{HourlyRate: 50, MonthlySalary: 5000}, BOQMonthlyHours, 50},
		{"derived from salary over 208", &LaborRecord{MonthlySalary: 5000, AdditionalCost: 300}, BOQMonthlyHours, 5300.0 / 208},
		{"derived from salary over 160", &LaborRecord{MonthlySalary: 4800}, SupervisionMonthlyHours, 30},
		{"derived from salary over 173", &LaborRecord{MonthlySalary: 1730}, CrewMonthlyHours, 10},
		{"nil record", nil, BOQMonthlyHours, 0},
		{"zero everything", &LaborRecord{}, BOQMonthlyHours, 0},
		{"zero divisor", &LaborRecord{MonthlySalary: 5000}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveHourlyRate(tt.rec, tt.monthlyHours)
			if math.Abs(got-tt.expect) > 0.001 {
				t.Errorf("EffectiveHourlyRate() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestEffectiveHourlyRate_SpecWorkedExample(t *testing.T) {
	rec := &LaborRecord{HourlyRate: 0, MonthlySalary: 5000, AdditionalCost: 300}
	got := EffectiveHourlyRate(rec, BOQMonthlyHours)
	if math.Abs(got-25.48) > 0.005 {
		t.Errorf("expected rate ~25.48, got %v", got)
	}
}

func TestLaborLabelRoundTrip(t *testing.T) {
	tests := []struct {
		role     string
		rate     float64
		currency string
	}{
		{"Electrician", 25.48, "USD"},
		{"Senior Welder", 102.5, "SAR"},
		{"HVAC Technician", 0, "EUR"},
		{"Site Engineer", 1234.56, "AED"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			label := EncodeLaborLabel(tt.role, tt.rate, tt.currency)
			role, rate, currency, err := DecodeLaborLabel(label)
			if err != nil {
				t.Fatalf("DecodeLaborLabel(%q) error = %v", label, err)
			}
			if role != tt.role {
				t.Errorf("role = %q, want %q", role, tt.role)
			}
			// Encoding rounds to 2 decimals, so compare against that.
			wantRate := math.Round(tt.rate*100) / 100
			if math.Abs(rate-wantRate) > 0.001 {
				t.Errorf("rate = %v, want %v", rate, wantRate)
			}
			if currency != tt.currency {
				t.Errorf("currency = %q, want %q", currency, tt.currency)
			}
		})
	}
}

func TestDecodeLaborLabel_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"plain role text", "Electrician"},
		{"missing hr suffix", "Electrician (25.00 USD)"},
		{"missing rate", "Electrician (USD/hr)"},
		{"empty", ""},
		{"role with parentheses", "Foreman (Sr) (25.00 USD/hr)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := DecodeLaborLabel(tt.label); err == nil {
				t.Errorf("DecodeLaborLabel(%q) expected error, got none", tt.label)
			}
		})
	}
}

func TestFindLaborByRole(t *testing.T) {
	records := []LaborRecord{
		{ID: "a", Role: "Electrician"},
		{ID: "b", Role: "Site Engineer"},
	}

	if rec := FindLaborByRole(records, "electrician"); rec == nil || rec.ID != "a" {
		t.Errorf("expected case-insensitive match for 'electrician', got %+v", rec)
	}
	if rec := FindLaborByRole(records, "SITE ENGINEER"); rec == nil || rec.ID != "b" {
		t.Errorf("expected case-insensitive match for 'SITE ENGINEER', got %+v", rec)
	}
	if rec := FindLaborByRole(records, "Plumber"); rec != nil {
		t.Errorf("expected nil for unknown role, got %+v", rec)
	}
}
