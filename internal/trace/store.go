package trace

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrNotFound = errors.New("trace: run not found")

// FrameRecord is one row of a timing trace.
type FrameRecord struct {
	Index       int
	Delta       time.Duration
	Ticks       int
	Accumulated time.Duration
	Zoom        float32
}

// RunMetadata describes a saved trace.
type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	TickRate   int                `json:"tick_rate"`
	TimeScale  float32            `json:"time_scale"`
	FrameRate  float64            `json:"frame_rate"`
	Jitter     float64            `json:"jitter"`
	Frames     int                `json:"frames"`
	TotalTicks uint64             `json:"total_ticks"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Durations are stored in nanoseconds so a loaded trace matches the run.
var header = []string{"frame", "delta_ns", "ticks", "accumulated_ns", "zoom"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes metadata.json and frames.csv under a new run directory and
// returns the run ID. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, frames []FrameRecord) (string, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, meta.Timestamp.UnixNano())
	meta.Frames = len(frames)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, "frames.csv"), frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []FrameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Index),
			strconv.FormatInt(int64(fr.Delta), 10),
			strconv.Itoa(fr.Ticks),
			strconv.FormatInt(int64(fr.Accumulated), 10),
			strconv.FormatFloat(float64(fr.Zoom), 'g', -1, 32),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all saved runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("trace: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the frame rows of a run. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		fr, ok := parseRow(rec)
		if !ok {
			continue
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func parseRow(rec []string) (FrameRecord, bool) {
	if len(rec) != len(header) {
		return FrameRecord{}, false
	}
	idx, err1 := strconv.Atoi(rec[0])
	delta, err2 := strconv.ParseInt(rec[1], 10, 64)
	ticks, err3 := strconv.Atoi(rec[2])
	acc, err4 := strconv.ParseInt(rec[3], 10, 64)
	zoom, err5 := strconv.ParseFloat(rec[4], 32)
	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return FrameRecord{}, false
	}
	return FrameRecord{
		Index:       idx,
		Delta:       time.Duration(delta),
		Ticks:       ticks,
		Accumulated: time.Duration(acc),
		Zoom:        float32(zoom),
	}, true
}

// Deltas returns the frame deltas in milliseconds.
func Deltas(frames []FrameRecord) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f.Delta) / float64(time.Millisecond)
	}
	return out
}

// TicksPerFrame returns the tick counts as floats for plotting.
func TicksPerFrame(frames []FrameRecord) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f.Ticks)
	}
	return out
}
