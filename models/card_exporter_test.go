package models_test

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"unisearch/models"
)

// memorySink keeps delivered artifacts in memory.
type memorySink struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemorySink() *memorySink {
	return &memorySink{files: map[string][]byte{}}
}

func (ms *memorySink) Deliver(filename string, data []byte) error {
	if ms.err != nil {
		return ms.err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.files[filename] = data
	return nil
}

type failingRasterizer struct{}

func (failingRasterizer) Rasterize(context.Context, models.Card) ([]byte, error) {
	return nil, errors.New("canvas exploded")
}

type panickingRasterizer struct{}

func (panickingRasterizer) Rasterize(context.Context, models.Card) ([]byte, error) {
	panic("nil canvas")
}

func searchedController(t *testing.T) *models.SearchController {
	t.Helper()
	dir := newFakeDirectory()
	dir.answers["Pakistan"] = pakistan()
	sc := models.NewSearchController(dir, models.ControllerOptions{})
	sc.Search(context.Background(), "Pakistan", models.TriggerExplicit)
	return sc
}

func TestExportCardProducesJPEG(t *testing.T) {
	sc := searchedController(t)
	exporter := models.NewCardExporter(models.JPEGRasterizer{Quality: 90, Scale: 2})
	sink := newMemorySink()

	if !exporter.Export(context.Background(), sc.CardRef(1), 1, sink) {
		t.Fatal("expected the card to be exported")
	}

	data, ok := sink.files["university_card_1.jpg"]
	if !ok {
		t.Fatalf("expected university_card_1.jpg, got %v", sink.files)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("artifact is not a JPEG: %v", err)
	}
	if w := img.Bounds().Dx(); w != 640 {
		t.Errorf("expected width 640 at scale 2, got %d", w)
	}
}

func TestExportCardWithoutMountedElementIsNoOp(t *testing.T) {
	sc := searchedController(t)
	exporter := models.NewCardExporter(models.JPEGRasterizer{Quality: 90, Scale: 1})
	sink := newMemorySink()

	if exporter.Export(context.Background(), sc.CardRef(7), 7, sink) {
		t.Error("expected no export for a card that is not rendered")
	}
	if len(sink.files) != 0 {
		t.Errorf("expected no artifact, got %v", sink.files)
	}

	if exporter.Export(context.Background(), nil, 0, sink) {
		t.Error("expected no export for a nil reference")
	}
}

func TestExportCardResolvesAtExportTime(t *testing.T) {
	sc := searchedController(t)
	ref := sc.CardRef(1) // Punjab University under "All"

	// filtering to Sindh leaves a single card, so index 1 is gone
	sc.Select("Sindh")

	exporter := models.NewCardExporter(models.JPEGRasterizer{Quality: 90, Scale: 1})
	sink := newMemorySink()
	if exporter.Export(context.Background(), ref, 1, sink) {
		t.Error("expected a stale reference to be a no-op")
	}
}

func TestExportCardRasterizeFailure(t *testing.T) {
	sc := searchedController(t)
	sink := newMemorySink()

	if models.NewCardExporter(failingRasterizer{}).Export(context.Background(), sc.CardRef(0), 0, sink) {
		t.Error("expected failure to be reported as false")
	}
	if models.NewCardExporter(panickingRasterizer{}).Export(context.Background(), sc.CardRef(0), 0, sink) {
		t.Error("expected a panic to be reported as false")
	}
	if len(sink.files) != 0 {
		t.Errorf("expected no artifact, got %v", sink.files)
	}
}

func TestExportCardSinkFailure(t *testing.T) {
	sc := searchedController(t)
	sink := newMemorySink()
	sink.err = errors.New("disk full")

	exporter := models.NewCardExporter(models.JPEGRasterizer{Quality: 90, Scale: 1})
	if exporter.Export(context.Background(), sc.CardRef(0), 0, sink) {
		t.Error("expected sink failure to be reported as false")
	}
}

func TestExportCardCancelledContext(t *testing.T) {
	sc := searchedController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exporter := models.NewCardExporter(models.JPEGRasterizer{Quality: 90, Scale: 1})
	if exporter.Export(ctx, sc.CardRef(0), 0, newMemorySink()) {
		t.Error("expected a cancelled export to produce nothing")
	}
}

func TestFileSinkWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards")
	sc := searchedController(t)
	exporter := models.NewCardExporter(models.JPEGRasterizer{Quality: 80, Scale: 1})

	if !exporter.Export(context.Background(), sc.CardRef(2), 2, models.FileSink{Dir: dir}) {
		t.Fatal("expected export to succeed")
	}

	f, err := os.Open(filepath.Join(dir, "university_card_2.jpg"))
	if err != nil {
		t.Fatalf("expected exported file: %v", err)
	}
	defer f.Close()
	if _, err := jpeg.Decode(f); err != nil {
		t.Errorf("exported file is not a JPEG: %v", err)
	}
}

func TestRasterizeLongNameGrowsCard(t *testing.T) {
	r := models.JPEGRasterizer{Quality: 90, Scale: 1}
	short, err := r.Rasterize(context.Background(), models.NewCard(models.University{Name: "MIT", WebPages: []string{"x"}}))
	if err != nil {
		t.Fatalf("rasterize failed: %v", err)
	}
	long, err := r.Rasterize(context.Background(), models.NewCard(models.University{
		Name:     strings.Repeat("Very Long Institute Name ", 8),
		WebPages: []string{"x"},
	}))
	if err != nil {
		t.Fatalf("rasterize failed: %v", err)
	}

	shortImg, _ := jpeg.Decode(bytes.NewReader(short))
	longImg, _ := jpeg.Decode(bytes.NewReader(long))
	if longImg.Bounds().Dy() <= shortImg.Bounds().Dy() {
		t.Errorf("expected a wrapped name to make the card taller: %d <= %d",
			longImg.Bounds().Dy(), shortImg.Bounds().Dy())
	}
}

func TestNewCardLabels(t *testing.T) {
	card := models.NewCard(models.University{Name: "NUST", WebPages: []string{"https://nust.edu.pk"}})
	if card.ProvinceLabel != "N/A" {
		t.Errorf("expected N/A for a missing province, got %q", card.ProvinceLabel)
	}
	if card.LinkLabel != "Visit Website" {
		t.Errorf("expected the Visit Website label, got %q", card.LinkLabel)
	}
	if models.CardFilename(4) != "university_card_4.jpg" {
		t.Errorf("unexpected filename %q", models.CardFilename(4))
	}
}
