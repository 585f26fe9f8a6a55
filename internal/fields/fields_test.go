package fields

import (
	"testing"
)

const sampleStatement = `VISA Platinum Card
Account ending in 1234
Statement Period: 01/01/2024 to 01/31/2024
Payment Due Date: 02/15/2024
Total Balance: $1,234.56
`

func TestExtractFullStatement(t *testing.T) {
	got := Extract(sampleStatement)

	if got.CardType != "VISA" {
		t.Errorf("card type: got %q, want VISA", got.CardType)
	}
	if got.Last4 != "1234" {
		t.Errorf("last4: got %q, want 1234", got.Last4)
	}
	if got.StatementPeriod == nil {
		t.Fatal("expected a statement period")
	}
	if got.StatementPeriod.Start != "2024-01-01" || got.StatementPeriod.End != "2024-01-31" {
		t.Errorf("period: got %q to %q", got.StatementPeriod.Start, got.StatementPeriod.End)
	}
	if got.DueDate != "2024-02-15" {
		t.Errorf("due date: got %q, want 2024-02-15", got.DueDate)
	}
	if got.TotalBalance != "1234.56" {
		t.Errorf("balance: got %q, want 1234.56", got.TotalBalance)
	}

	for _, field := range []string{"card_type", "last4", "statement_period", "due_date", "total_balance"} {
		conf, ok := got.Confidence[field]
		if !ok {
			t.Errorf("missing confidence for %s", field)
			continue
		}
		if conf <= 0 || conf > 1 {
			t.Errorf("confidence for %s out of range: %v", field, conf)
		}
	}
}

func TestExtractEmptyText(t *testing.T) {
	got := Extract("")

	if got.CardType != "" || got.Last4 != "" || got.DueDate != "" || got.TotalBalance != "" {
		t.Error("expected all scalar fields empty")
	}
	if got.StatementPeriod != nil {
		t.Error("expected no statement period")
	}
	if got.Confidence == nil {
		t.Fatal("confidence map must not be nil")
	}
	if len(got.Confidence) != 0 {
		t.Errorf("expected empty confidence map, got %v", got.Confidence)
	}
}

func TestExtractFieldsAreIndependent(t *testing.T) {
	got := Extract("New Balance: $42.00 on your MASTERCARD")

	if got.CardType != "MASTERCARD" {
		t.Errorf("card type: got %q", got.CardType)
	}
	if got.TotalBalance != "42.00" {
		t.Errorf("balance: got %q", got.TotalBalance)
	}
	if got.Last4 != "" || got.DueDate != "" || got.StatementPeriod != nil {
		t.Error("absent fields must stay absent")
	}
	if len(got.Confidence) != 2 {
		t.Errorf("expected 2 confidence entries, got %v", got.Confidence)
	}
}

func TestExtractFirstOccurrenceWins(t *testing.T) {
	text := "Total Balance: $10.00\nTotal Balance: $99.99"
	got := Extract(text)
	if got.TotalBalance != "10.00" {
		t.Errorf("got %q, want first occurrence 10.00", got.TotalBalance)
	}
}

func TestExtractNegativeBalances(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"parenthesized credit", "Total Balance: ($50.00)", "-50.00"},
		{"minus before symbol", "New Balance: -$42.00", "-42.00"},
		{"thousands separators", "Amount Due: $12,345,678.90", "12345678.90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got.TotalBalance != tt.want {
				t.Errorf("got %q, want %q", got.TotalBalance, tt.want)
			}
		})
	}
}

func TestExtractDegradedPeriod(t *testing.T) {
	// Parseable start and end dates resolve to ISO; anything the date parser
	// cannot handle stays verbatim inside the resolved period.
	got := Extract("Statement Period: 1/1/2024 to 1/31/2024")
	if got.StatementPeriod == nil {
		t.Fatal("expected a period")
	}
	if got.StatementPeriod.Raw != "" {
		t.Errorf("expected resolved period, got raw %q", got.StatementPeriod.Raw)
	}
	if got.Confidence["statement_period"] != confPeriod {
		t.Errorf("confidence: got %v, want %v", got.Confidence["statement_period"], confPeriod)
	}
}

func TestExtractMaskedAccountNumber(t *testing.T) {
	got := Extract("Card ************5678")
	if got.Last4 != "5678" {
		t.Errorf("got %q, want 5678", got.Last4)
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1,234.56", "1234.56"},
		{"$500", "500"},
		{"($50.00)", "-50.00"},
		{"-$42.00", "-42.00"},
		{" $ 1,000 ", "1000"},
	}

	for _, tt := range tests {
		if got := normalizeAmount(tt.in); got != tt.want {
			t.Errorf("normalizeAmount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
