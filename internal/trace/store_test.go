package trace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sampleFrames() []FrameRecord {
	return []FrameRecord{
		{Index: 0, Delta: 0, Ticks: 0, Accumulated: 0, Zoom: 0.25},
		{Index: 1, Delta: 15 * time.Millisecond, Ticks: 1, Accumulated: 5 * time.Millisecond, Zoom: 0.25},
		{Index: 2, Delta: 15 * time.Millisecond, Ticks: 2, Accumulated: 0, Zoom: 0.5},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{
		Name:     "bench",
		Seed:     42,
		TickRate: 100,
		Metrics:  map[string]float64{"mean_ticks": 1.5},
	}, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 || meta.TickRate != 100 || meta.Frames != 3 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["mean_ticks"] != 1.5 {
		t.Errorf("expected mean_ticks 1.5, got %f", meta.Metrics["mean_ticks"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if diff := cmp.Diff(sampleFrames(), frames); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v, %v", runs, err)
	}

	first, _ := st.Save(RunMetadata{Name: "a"}, nil)
	second, _ := st.Save(RunMetadata{Name: "b"}, sampleFrames())
	if err := os.Mkdir(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.LoadFrames("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadFramesSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save(RunMetadata{Name: "x"}, sampleFrames()[:1])
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, runID, "frames.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("1,abc,0,0,1\n2,1000\n")
	f.Close()

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 1 {
		t.Errorf("expected 1 valid frame, got %d", len(frames))
	}
}

func TestStoreKeepsSubMicrosecondDurations(t *testing.T) {
	st := New(t.TempDir())
	want := []FrameRecord{
		{Index: 0, Delta: 16666667, Ticks: 1, Accumulated: 6666667, Zoom: 1},
		{Index: 1, Delta: 999, Ticks: 0, Accumulated: 6667666, Zoom: 1},
	}
	runID, err := st.Save(RunMetadata{Name: "fine"}, want)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("durations changed on round trip (-want +got):\n%s", diff)
	}
}

func TestSeries(t *testing.T) {
	frames := sampleFrames()

	if diff := cmp.Diff([]float64{0, 15, 15}, Deltas(frames)); diff != "" {
		t.Errorf("deltas mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, TicksPerFrame(frames)); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}
