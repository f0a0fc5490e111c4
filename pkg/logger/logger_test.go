package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithInvocationID(ctx, "tx-123")
	ctx = log.WithSettlementID(ctx, "SETTLE-001")

	log.Error(ctx, "boom", errors.New("boom"))

	if !bytes.Contains(buf.Bytes(), []byte("\"tx_id\"")) {
		t.Fatalf("expected tx_id to be preserved; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"settlement_id\"")) {
		t.Fatalf("expected settlement_id to be preserved; entry=%s", buf.String())
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("warn"), Output: buf})

	log.Info(context.Background(), "quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered below warn; entry=%s", buf.String())
	}

	log.Warn(context.Background(), "loud")
	if buf.Len() == 0 {
		t.Fatal("warn should be emitted")
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if lvl := ParseLevel(""); lvl.String() != "info" {
		t.Fatalf("expected info for empty input, got %v", lvl)
	}
	if lvl := ParseLevel("not-a-level"); lvl.String() != "info" {
		t.Fatalf("expected info for invalid input, got %v", lvl)
	}
	if lvl := ParseLevel("DEBUG"); lvl.String() != "debug" {
		t.Fatalf("expected debug, got %v", lvl)
	}
}
