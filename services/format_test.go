package services

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		expect   string
	}{
		{"grouped with currency", 158496.73, "USD", "158,496.73 USD"},
		{"small amount", 42.5, "SAR", "42.50 SAR"},
		{"zero", 0, "EUR", "0.00 EUR"},
		{"millions", 1234567.891, "USD", "1,234,567.89 USD"},
		{"no currency code", 1000, "", "1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMoney(tt.amount, tt.currency)
			if got != tt.expect {
				t.Errorf("FormatMoney(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.expect)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(15); got != "15.0%" {
		t.Errorf("FormatPercent(15) = %q, want \"15.0%%\"", got)
	}
	if got := FormatPercent(2.55); got != "2.6%" {
		t.Errorf("FormatPercent(2.55) = %q, want \"2.6%%\"", got)
	}
}
