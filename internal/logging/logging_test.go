package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestSetupJSON(t *testing.T) {
	is := is.New(t)
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	log := Setup(&buf, "warn", "json")
	log.Info("hidden")
	log.Warn("shown", "key", "mapLayers")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Equal(len(lines), 1)

	var entry map[string]any
	is.NoErr(json.Unmarshal([]byte(lines[0]), &entry))
	is.Equal(entry["msg"], "shown")
	is.Equal(entry["key"], "mapLayers")
}

func TestContextLogger(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := NewContextWithLogger(context.Background(), log)

	is.Equal(GetFromContext(ctx), log)
	is.Equal(GetFromContext(context.Background()), slog.Default())
}
