// Package services provides the cost estimation engine: labor rate
// resolution, per-line cost calculation, aggregation, the markup chain,
// and the BOQ spreadsheet import pipeline.
package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Monthly-hours divisors used to derive an hourly rate from a monthly
// salary. The three conventions are intentionally different: BOQ labor
// and supervision cost against 208, itemized supervision against 160,
// itemized crew manpower against 173. Call sites pick explicitly.
const (
	BOQMonthlyHours         = 208.0
	SupervisionMonthlyHours = 160.0
	CrewMonthlyHours        = 173.0
)

// LaborRecord is a reusable resource definition shared across manpower,
// supervision, and BOQ labor references.
type LaborRecord struct {
	ID             string
	Role           string
	MonthlySalary  float64
	AdditionalCost float64
	HourlyRate     float64
}

// LaborTable indexes labor records by ID.
type LaborTable map[string]*LaborRecord

// NewLaborTable builds a LaborTable from a slice of records.
func NewLaborTable(records []LaborRecord) LaborTable {
	table := make(LaborTable, len(records))
	for i := range records {
		table[records[i].ID] = &records[i]
	}
	return table
}

// EffectiveHourlyRate returns the record's explicit hourly rate when set,
// otherwise derives one from the monthly salary plus additional cost using
// the given monthly-hours divisor. A nil record yields 0; the caller decides
// whether that means "no labor assigned" or bad data.
func EffectiveHourlyRate(rec *LaborRecord, monthlyHours float64) float64 {
	if rec == nil {
		return 0
	}
	if rec.HourlyRate != 0 {
		return rec.HourlyRate
	}
	if monthlyHours <= 0 {
		return 0
	}
	return (rec.MonthlySalary + rec.AdditionalCost) / monthlyHours
}

// laborLabelPattern matches the fixed cell encoding
// "{role} ({rate} {currency}/hr)". The role capture is greedy so a
// parenthesised suffix is always treated as the rate block.
var laborLabelPattern = regexp.MustCompile(`^(.+) \(([0-9]+(?:\.[0-9]+)?) ([A-Za-z]{3})/hr\)$`)

// EncodeLaborLabel renders the dropdown value offered to spreadsheet users.
// DecodeLaborLabel parses the exact same format back; the two must stay
// byte-for-byte symmetric.
func EncodeLaborLabel(role string, rate float64, currency string) string {
	return fmt.Sprintf("%s (%.2f %s/hr)", role, rate, currency)
}

// DecodeLaborLabel reverses EncodeLaborLabel, returning the role, rate and
// currency. Roles containing parentheses cannot be encoded unambiguously
// and are rejected rather than mis-parsed.
func DecodeLaborLabel(label string) (role string, rate float64, currency string, err error) {
	m := laborLabelPattern.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return "", 0, "", fmt.Errorf("unrecognized labor label %q", label)
	}
	role = m[1]
	if strings.ContainsAny(role, "()") {
		return "", 0, "", fmt.Errorf("labor label %q: role names with parentheses are not supported", label)
	}
	rate, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, "", fmt.Errorf("labor label %q: bad rate: %w", label, err)
	}
	return role, rate, m[3], nil
}

// ValidateRole rejects role names that cannot round-trip through the label
// codec: a parenthesis inside the role makes the encoded label ambiguous.
func ValidateRole(role string) error {
	if strings.ContainsAny(role, "()") {
		return fmt.Errorf("role %q: parentheses are not supported in role names", role)
	}
	return nil
}

// FindLaborByRole looks up a labor record by role name, case-insensitively.
// Returns nil when no record matches.
func FindLaborByRole(records []LaborRecord, role string) *LaborRecord {
	for i := range records {
		if strings.EqualFold(records[i].Role, role) {
			return &records[i]
		}
	}
	return nil
}
