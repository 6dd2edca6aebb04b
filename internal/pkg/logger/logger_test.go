package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":    DebugLevel,
		" WARN ":   WarnLevel,
		"error":    ErrorLevel,
		"disabled": DisabledLevel,
		"":         InfoLevel,
		"verbose":  InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigureWritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	lgr := WithComponent("ledger")
	lgr.Info().Str("studentNumber", "S1").Msg("payment recorded")
	Debug().Msg("suppressed at info level")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "ledger" || entry["studentNumber"] != "S1" {
		t.Errorf("unexpected entry: %v", entry)
	}
}
