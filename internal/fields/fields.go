// Package fields applies the pattern library to statement text and resolves
// each field to at most one value with a confidence score.
package fields

import (
	"strings"

	"github.com/insightdelivered/card-statement-parser/internal/dates"
	"github.com/insightdelivered/card-statement-parser/internal/models"
	"github.com/insightdelivered/card-statement-parser/internal/patterns"
)

// Fixed confidence scores per field. These are heuristic certainty
// indicators, not probabilities: a direct grammar hit scores high, the
// degraded statement-period fallback scores lower.
const (
	confCardType       = 0.95
	confLast4          = 0.95
	confPeriod         = 0.9
	confPeriodDegraded = 0.6
	confDueDate        = 0.95
	confBalance        = 0.95
)

// Extract scans text for every supported field. Fields are extracted
// independently: a field that is absent or malformed never affects the
// others. Fields not found in the text are omitted from both the value
// struct and the confidence map.
func Extract(text string) *models.ExtractedFields {
	out := &models.ExtractedFields{
		Confidence: map[string]float64{},
	}

	if network := patterns.FindCardNetwork(text); network != "" {
		out.CardType = strings.ToUpper(network)
		out.Confidence["card_type"] = confCardType
	}

	if m := patterns.Last4.FindStringSubmatch(text); m != nil {
		if last4 := firstExact4Digits(m[1:]); last4 != "" {
			out.Last4 = last4
			out.Confidence["last4"] = confLast4
		}
	}

	if m := patterns.Period.FindStringSubmatch(text); m != nil {
		if period := assemblePeriod(m); period != nil {
			out.StatementPeriod = period
			if period.Raw != "" {
				out.Confidence["statement_period"] = confPeriodDegraded
			} else {
				out.Confidence["statement_period"] = confPeriod
			}
		}
	}

	if m := patterns.DueDate.FindStringSubmatch(text); m != nil {
		if raw := firstWithDigit(m[1:]); raw != "" {
			out.DueDate = dates.Normalize(raw)
			out.Confidence["due_date"] = confDueDate
		}
	}

	if m := patterns.Balance.FindStringSubmatch(text); m != nil {
		if raw := firstWithDigit(m[1:]); raw != "" {
			out.TotalBalance = normalizeAmount(raw)
			out.Confidence["total_balance"] = confBalance
		}
	}

	return out
}

// assemblePeriod turns a statement-period grammar match into a period value.
// Captured substrings without a digit are ignored: they are label fragments
// from a partial match, not dates. With two usable dates the period resolves
// normally; with fewer, the whole matched span is reported as a degraded
// value so the signal is not silently lost. A match with no usable dates at
// all yields nil.
func assemblePeriod(m []string) *models.StatementPeriod {
	var ds []string
	for _, g := range m[1:] {
		if containsDigit(g) {
			ds = append(ds, g)
		}
	}
	switch {
	case len(ds) >= 2:
		return &models.StatementPeriod{
			Start: dates.Normalize(ds[0]),
			End:   dates.Normalize(ds[1]),
		}
	case strings.TrimSpace(m[0]) != "" && containsDigit(m[0]):
		return &models.StatementPeriod{Raw: m[0]}
	default:
		return nil
	}
}

// normalizeAmount canonicalizes a captured balance token: thousands commas,
// currency symbol and inner spaces are stripped, and accounting parentheses
// become a leading minus sign. "($1,234.56)" normalizes to "-1234.56".
func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "(", "-")
	s = strings.ReplaceAll(s, ")", "")
	return s
}

// firstExact4Digits returns the first capture that is exactly four digits.
// The masked-account grammar guarantees digits, but the length check guards
// against future grammar edits widening a group.
func firstExact4Digits(groups []string) string {
	for _, g := range groups {
		if len(g) == 4 && allDigits(g) {
			return g
		}
	}
	return ""
}

// firstWithDigit returns the first capture containing at least one digit.
func firstWithDigit(groups []string) string {
	for _, g := range groups {
		if containsDigit(g) {
			return g
		}
	}
	return ""
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
