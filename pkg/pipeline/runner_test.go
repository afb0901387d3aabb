package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eventlayout/pkg/cache"
	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
)

const validCSV = `NomeCampo;Entrada;TipoCampo;TamanhoCampo;PosicaoInicial;PosicaoFinal;ValorPadrao;AlinhamentoCampo
CODIGO;S;TEXTO;3;1;3;AB;
VALOR;S;INTEIRO;4;4;7;7;ZERO_ESQUERDA
`

const overlapCSV = `NomeCampo;Entrada;TamanhoCampo;PosicaoInicial
A;S;3;1
B;S;2;3
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, log.New(io.Discard))
	t.Cleanup(func() { r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, ok := r.Cache.(cache.NullCache); !ok {
		t.Errorf("Cache = %T, want NullCache", r.Cache)
	}
	if r.Keyer == nil || r.Logger == nil {
		t.Error("keyer and logger should default")
	}
	if got := r.artifactTTL(); got != cache.TTLArtifact {
		t.Errorf("artifactTTL() = %v, want %v", got, cache.TTLArtifact)
	}
	r.ArtifactTTL = time.Minute
	if got := r.artifactTTL(); got != time.Minute {
		t.Errorf("artifactTTL() = %v, want 1m", got)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := Options{Path: writeCSV(t, validCSV), Formats: []string{"xml", "line", "json"}}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Report.Valid() || res.Stats.FieldCount != 2 || res.Stats.TotalSize != 7 {
		t.Errorf("report = %s", res.Report.Status())
	}
	if res.CacheInfo.LoadHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", res.CacheInfo)
	}

	xml := string(res.Artifacts["xml"])
	if !strings.Contains(xml, `<evento tamanhoTotal="7" totalCampos="2">`) || !strings.Contains(xml, ">0007</VALOR>") {
		t.Errorf("xml = %s", xml)
	}
	if got := string(res.Artifacts["line"]); got != "AB 0007\n" {
		t.Errorf("line = %q", got)
	}
	if !strings.Contains(string(res.Artifacts["json"]), `"total_size": 7`) {
		t.Errorf("json = %s", res.Artifacts["json"])
	}
	if res.LayoutHash == "" || res.Model == nil {
		t.Error("hash and model should be set")
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.LoadHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", again.CacheInfo)
	}
	if string(again.Artifacts["xml"]) != xml {
		t.Error("cached xml differs")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.LoadHit {
		t.Error("refresh should bypass the records cache")
	}
}

func TestExecuteRefused(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	path := writeCSV(t, overlapCSV)

	res, err := r.Execute(ctx, Options{Path: path})
	if !errors.Is(err, errors.ErrCodeLayoutInvalid) {
		t.Fatalf("err = %v, want LAYOUT_INVALID", err)
	}
	if res == nil || res.Report == nil || res.Report.Valid() {
		t.Fatalf("refused result should carry the failing report: %+v", res)
	}
	if res.Model != nil || len(res.Artifacts) != 0 {
		t.Error("refused layout should not be exported")
	}

	forced, err := r.Execute(ctx, Options{Path: path, Force: true, Formats: []string{"line"}})
	if err != nil {
		t.Fatalf("forced Execute: %v", err)
	}
	if got := string(forced.Artifacts["line"]); got != "    \n" {
		t.Errorf("forced line = %q", got)
	}
}

func TestExecuteRecalculate(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{
		Path:        writeCSV(t, overlapCSV),
		Recalculate: true,
		Formats:     []string{"xml"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b := res.Records[1]; *b.Start != 4 || *b.End != 5 {
		t.Errorf("B after recalc = %s", b)
	}
}

func TestExecuteLoadErrors(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Path: filepath.Join(t.TempDir(), "missing.csv")}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
	if _, err := r.Execute(ctx, Options{Path: "layout.doc"}); !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("unsupported err = %v", err)
	}
	if _, err := r.Execute(ctx, Options{Path: writeCSV(t, validCSV), Formats: []string{"pdf"}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad format err = %v", err)
	}
}

func TestProcessPartialCache(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	records := []*field.Record{
		{Line: 1, Name: "A", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(2), Value: "x"},
	}

	first, err := r.Process(ctx, records, Options{Formats: []string{"xml"}})
	if err != nil {
		t.Fatal(err)
	}
	both, err := r.Process(ctx, records, Options{Formats: []string{"xml", "dot"}})
	if err != nil {
		t.Fatal(err)
	}
	if both.CacheInfo.RenderHit {
		t.Error("dot was never rendered, RenderHit should be false")
	}
	if string(both.Artifacts["xml"]) != string(first.Artifacts["xml"]) || !strings.Contains(string(both.Artifacts["dot"]), "digraph") {
		t.Errorf("artifacts = %v", both.Artifacts)
	}

	records[0].Value = "y"
	changed, err := r.Process(ctx, records, Options{Formats: []string{"xml"}})
	if err != nil {
		t.Fatal(err)
	}
	if changed.CacheInfo.RenderHit || changed.LayoutHash == first.LayoutHash {
		t.Error("edited records must not reuse cached artifacts")
	}
	if !strings.Contains(string(changed.Artifacts["xml"]), ">y </A>") {
		t.Errorf("xml = %s", changed.Artifacts["xml"])
	}
}
