package enums

import "testing"

func TestSettlementStatusTransitionClosure(t *testing.T) {
	allowed := map[[2]SettlementStatus]bool{
		{SettlementStatusPending, SettlementStatusProcessing}:   true,
		{SettlementStatusPending, SettlementStatusCancelled}:    true,
		{SettlementStatusProcessing, SettlementStatusCompleted}: true,
		{SettlementStatusProcessing, SettlementStatusFailed}:    true,
	}

	for _, from := range validSettlementStatuses {
		for _, to := range validSettlementStatuses {
			got := from.CanTransitionTo(to)
			want := allowed[[2]SettlementStatus{from, to}]
			if got != want {
				t.Fatalf("transition %s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestSettlementStatusTerminal(t *testing.T) {
	terminal := []SettlementStatus{
		SettlementStatusCompleted,
		SettlementStatusFailed,
		SettlementStatusCancelled,
	}
	for _, status := range terminal {
		if !status.IsTerminal() {
			t.Fatalf("expected %s to be terminal", status)
		}
		for _, to := range validSettlementStatuses {
			if status.CanTransitionTo(to) {
				t.Fatalf("terminal %s must not transition to %s", status, to)
			}
		}
	}
	if SettlementStatusPending.IsTerminal() || SettlementStatusProcessing.IsTerminal() {
		t.Fatal("PENDING and PROCESSING must not be terminal")
	}
	if SettlementStatus("UNKNOWN").IsTerminal() {
		t.Fatal("unknown statuses are not terminal, they are invalid")
	}
}

func TestParseSettlementStatus(t *testing.T) {
	for _, status := range validSettlementStatuses {
		parsed, err := ParseSettlementStatus(string(status))
		if err != nil {
			t.Fatalf("unexpected parse error for %s: %v", status, err)
		}
		if parsed != status {
			t.Fatalf("parse mismatch: %s != %s", parsed, status)
		}
	}
	if _, err := ParseSettlementStatus("ARCHIVED"); err == nil {
		t.Fatal("expected error for unknown status literal")
	}
	if _, err := ParseSettlementStatus("pending"); err == nil {
		t.Fatal("status literals are case sensitive")
	}
}

func TestParseCurrencyNormalizes(t *testing.T) {
	parsed, err := ParseCurrency(" usd ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != CurrencyUSD {
		t.Fatalf("expected USD, got %s", parsed)
	}
	if _, err := ParseCurrency("ZZZ"); err == nil {
		t.Fatal("expected error for unsupported currency")
	}
}
