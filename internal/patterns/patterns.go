// Package patterns is the recognition grammar library for card statement
// text. The grammars are composed from a shared date sub-expression and are
// pure data: matching policy (first occurrence, capture selection, confidence)
// lives in the fields package.
package patterns

import "regexp"

// datePart recognizes a single date in the three supported shapes:
// ISO "2024-01-02", "Jan 1, 2024" / "1 15 2024" (month name or numeric
// month, day, 2-4 digit year), and "1/1/2024". Month names are the standard
// 3-letter abbreviations plus "Sept", matched case-insensitively by the
// composed grammars. The ISO alternative comes first: alternation is
// ordered, and the numeric-month branch would otherwise truncate an ISO
// date to its leading year. Kept non-capturing so composed grammars control
// their own capture groups.
const datePart = `\b\d{4}-\d{2}-\d{2}\b|\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec|\d{1,2})\.?\s*\d{1,2},?\s*\d{2,4}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`

var (
	// Date matches a single date substring anywhere in the text.
	Date = regexp.MustCompile(`(?i)(` + datePart + `)`)

	// Last4 matches a masked account number: either a labelled 4-digit run
	// ("Account ending in 1234", "Card Number: 5678") or an asterisk mask
	// ("****5678"). The connector word and trailing colon are both optional.
	// Exactly one of the two groups captures; a run that is not exactly
	// 4 digits does not match.
	Last4 = regexp.MustCompile(`(?i)(?:\b(?:Account|Acct|Card)\s*(?:ending\s*in|ending|Number|No\.|#)?\s*:?\s*(\d{4})\b)|(?:\*\*+(\d{4})\b)`)

	// Balance matches a labelled statement balance. The capture keeps any
	// wrapping parentheses (accounting negative notation) and thousands
	// separators; normalization is the extractor's job.
	Balance = regexp.MustCompile(`(?i)(?:Total[\s-]+Balance|Statement\s+Balance|New\s+Balance|Balance\s+Due|Amount\s+Due)\s*:?\s*\$?\s*(\(?-?\$?\s*-?[\d,]+(?:\.\d+)?\)?)`)

	// DueDate matches a labelled payment due date, capturing the date part.
	DueDate = regexp.MustCompile(`(?i)(?:Payment\s+Due\s+Date|Due\s+Date|Payment\s+Due)\s*:?\s*(` + datePart + `)`)

	// Period matches a labelled statement period, capturing the start and
	// end dates in groups 1 and 2.
	Period = regexp.MustCompile(`(?i)(?:Statement\s+Period|Billing\s+Period|Statement\s+Date[s]?)\s*[:\s\x{2013}-]+\s*(` + datePart + `)\s*(?:to|-|\x{2013})\s*(` + datePart + `)`)
)

// CardNetworks is the fixed card-network vocabulary. Order matters: when a
// text mentions more than one network, the earliest entry in this list wins,
// regardless of where each appears in the text.
var CardNetworks = []string{"VISA", "MASTERCARD", "AMEX", "AMERICAN EXPRESS", "DISCOVER"}

// cardNetworkPatterns holds one whole-word, case-insensitive pattern per
// vocabulary entry, in vocabulary order.
var cardNetworkPatterns = func() []*regexp.Regexp {
	ps := make([]*regexp.Regexp, len(CardNetworks))
	for i, name := range CardNetworks {
		ps[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return ps
}()

// FindCardNetwork returns the first vocabulary entry that appears as a whole
// word in text, or "" if none does.
func FindCardNetwork(text string) string {
	for i, p := range cardNetworkPatterns {
		if p.MatchString(text) {
			return CardNetworks[i]
		}
	}
	return ""
}
