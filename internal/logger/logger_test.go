package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New()
	if log.GetLevel() == zerolog.Disabled {
		t.Error("expected logger to be enabled")
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Str("account", "ACC100001").Msg("test message")

	out := buf.String()
	if !strings.Contains(out, "test message") || !strings.Contains(out, "ACC100001") {
		t.Errorf("unexpected output: %s", out)
	}
}
