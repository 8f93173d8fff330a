package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "supply-test", false)
	defer func() { Logger = zerolog.Nop() }()

	Info(context.Background()).Str("sku", "PEN-0010").Msg("stock updated")

	out := buf.String()
	if !strings.Contains(out, `"service":"supply-test"`) {
		t.Fatalf("missing service field: %s", out)
	}
	if !strings.Contains(out, `"sku":"PEN-0010"`) {
		t.Fatalf("missing sku field: %s", out)
	}
	if strings.Contains(out, "trace_id") {
		t.Fatalf("unexpected trace id without span: %s", out)
	}
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetLevel("DEBUG")
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v", zerolog.GlobalLevel())
	}

	SetLevel("bogus")
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %v", zerolog.GlobalLevel())
	}
}
