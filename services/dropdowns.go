package services

// CategoryOptions is the closed category set offered in the BOQ template
// dropdown. It is advisory for input UI only: the aggregation layer buckets
// unknown categories verbatim rather than rejecting them.
var CategoryOptions = []string{
	"Civil",
	"Demolition",
	"Electrical",
	"Mechanical",
	"HVAC",
	"Plumbing",
	"Fire Protection",
	"Finishes",
	"External Works",
	"General",
}

// UOMOptions is the list of Unit of Measurement options.
var UOMOptions = []string{
	"Nos",
	"Sqm",
	"Rmt",
	"Cum",
	"Kg",
	"MT",
	"Lot",
	"Set",
	"Lumpsum",
	"Ltr",
	"Roll",
	"Trip",
	"Day",
	"Month",
	"Hour",
}

// CurrencyOptions is the list of supported project currency codes.
var CurrencyOptions = []string{"USD", "EUR", "GBP", "SAR", "AED", "QAR"}

// Project modes.
const (
	ModeStandard = "standard"
	ModeBOQ      = "boq"
)
