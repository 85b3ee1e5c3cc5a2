package pipeline

import (
	"bytes"
	"context"
	stdio "io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bluefish/pkg/cache"
	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/io"
	"github.com/matzehuels/bluefish/pkg/observability"
)

func planets(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../io/testdata/planets.toml")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func quiet() *log.Logger { return log.New(stdio.Discard) }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: []byte("width = 1"), Syntax: io.TOML}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats should default to %s, got %v", DefaultFormat, opts.Formats)
	}
	if opts.MaxPasses == 0 || opts.Scale != DefaultScale || opts.Logger == nil {
		t.Errorf("defaults not applied: %+v", opts)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"empty source", Options{Syntax: io.JSON}},
		{"bad syntax", Options{Source: []byte("{}"), Syntax: "xml"}},
		{"bad format", Options{Source: []byte("{}"), Syntax: io.JSON, Formats: []string{"gif"}}},
		{"negative passes", Options{Source: []byte("{}"), Syntax: io.JSON, MaxPasses: -1}},
		{"bad background", Options{Source: []byte("{}"), Syntax: io.JSON, Background: "#1"}},
	}
	for _, tt := range tests {
		if err := tt.opts.ValidateAndSetDefaults(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Background: "red", Bounds: true, MaxPasses: 8}
	b := Options{MaxPasses: 8}

	if a.ArtifactKeyOpts("svg") == b.ArtifactKeyOpts("svg") {
		t.Error("background should change SVG keys")
	}
	if a.ArtifactKeyOpts("json") != b.ArtifactKeyOpts("json") {
		t.Error("background should not change snapshot keys")
	}
	if a.ArtifactKeyOpts("dot") == (Options{MaxPasses: 8, Detailed: true}).ArtifactKeyOpts("dot") {
		t.Error("detail should change DOT keys")
	}
}

func TestExecute(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quiet())
	defer r.Close()

	opts := Options{Source: planets(t), Syntax: io.TOML, Formats: []string{"svg", "json", "dot"}}
	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}
	if first.Tree == nil || first.Document == nil || first.Document.ID != "planets" {
		t.Fatal("result missing tree or document")
	}
	if first.Stats.Nodes != 8 || first.Stats.Passes < 2 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if n, ok := first.Snapshot.Node("venus"); !ok || n.Effective.Left.Or(-1) != 50 {
		t.Errorf("venus = %+v", n)
	}
	if !strings.Contains(string(first.Artifacts["svg"]), `<rect id="venus"`) {
		t.Error("svg artifact missing venus")
	}
	if !strings.Contains(string(first.Artifacts["dot"]), "digraph G") {
		t.Error("dot artifact is not DOT")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !second.CacheHit || second.Tree != nil {
		t.Error("second run should be served from cache without layout")
	}
	for format, data := range first.Artifacts {
		if !bytes.Equal(data, second.Artifacts[format]) {
			t.Errorf("cached %s differs", format)
		}
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (refresh): %v", err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, quiet())

	_, err := r.Execute(context.Background(), Options{Source: []byte(`{"width": 0, "height": 10}`), Syntax: io.JSON})
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("invalid document: got %v", err)
	}

	_, err = r.Execute(context.Background(), Options{Source: planets(t), Syntax: io.TOML, MaxPasses: 1})
	if !errors.Is(err, errors.ErrCodeNonConvergent) {
		t.Errorf("one pass: got %v, want NON_CONVERGENT", err)
	}

	_, err = r.Execute(context.Background(), Options{Source: planets(t), Syntax: io.YAML})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("wrong syntax: got %v", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLayoutStart(context.Context, int) { h.record("layout") }
func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ int, _ time.Duration, err error) {
	h.record("layout done")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render done")
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, quiet())
	if _, err := r.Execute(context.Background(), Options{Source: planets(t), Syntax: io.TOML}); err != nil {
		t.Fatal(err)
	}
	want := []string{"layout", "layout done", "render", "render done"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
