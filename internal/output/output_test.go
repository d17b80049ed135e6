package output

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/daryltucker/forestry/internal/model"
)

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w.Write(0, model.NewTree(model.Oak, 2020, 10.5, 1)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Write(1, model.NewTree(model.Pine, 2010, 52, 2.25)); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "index,species,planted_year,height_ft,growth_rate_ft_yr\n" +
		"0,OAK,2020,10.5,1\n" +
		"1,PINE,2010,52,2.25\n"
	if buf.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	if err := w.Write(3, model.NewTree(model.Birch, 2001, 4, 0.5)); err != nil {
		t.Fatalf("write: %v", err)
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if rec["index"] != float64(3) || rec["species"] != "BIRCH" || rec["planted_year"] != float64(2001) ||
		rec["height"] != float64(4) || rec["growth_rate"] != 0.5 {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestConfigure(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	if err := Configure(&buf, "info", "json"); err != nil {
		t.Fatalf("configure: %v", err)
	}
	Logger.Debug("hidden")
	Logger.Info("shown", "forest", "north")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line logged at info level: %s", out)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); err != nil {
		t.Fatalf("not json: %q", out)
	}
	if rec["msg"] != "shown" || rec["forest"] != "north" {
		t.Fatalf("unexpected record %v", rec)
	}

	if err := Configure(&buf, "info", "xml"); err == nil {
		t.Fatalf("expected format error")
	}
	if err := Configure(&buf, "loud", "text"); err == nil {
		t.Fatalf("expected level error")
	}
}
