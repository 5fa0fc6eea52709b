package services

import "github.com/dustin/go-humanize"

// FormatMoney renders an amount with thousands grouping, exactly two decimal
// places, and the project currency code, e.g. "158,496.73 USD".
func FormatMoney(amount float64, currency string) string {
	formatted := humanize.FormatFloat("#,###.##", amount)
	if currency == "" {
		return formatted
	}
	return formatted + " " + currency
}

// FormatPercent renders a percentage knob for display, e.g. "15.0%".
func FormatPercent(p float64) string {
	return humanize.FormatFloat("#,###.#", p) + "%"
}
