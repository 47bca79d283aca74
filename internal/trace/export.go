package trace

import (
	"encoding/json"
	"io"
	"time"
)

// ExportData is the JSON form of a whole run. Rows is kept apart from the
// metadata's "frames" count.
type ExportData struct {
	RunMetadata
	Rows []ExportFrame `json:"frame_rows,omitempty"`
}

type ExportFrame struct {
	Index         int     `json:"index"`
	DeltaMs       float64 `json:"delta_ms"`
	Ticks         int     `json:"ticks"`
	AccumulatedMs float64 `json:"accumulated_ms"`
	Zoom          float32 `json:"zoom"`
}

func toMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// ExportJSON writes meta and, when frames is non-nil, every frame row.
func ExportJSON(w io.Writer, meta RunMetadata, frames []FrameRecord) error {
	data := ExportData{RunMetadata: meta}
	if frames != nil {
		data.Rows = make([]ExportFrame, len(frames))
		for i, f := range frames {
			data.Rows[i] = ExportFrame{
				Index:         f.Index,
				DeltaMs:       toMs(f.Delta),
				Ticks:         f.Ticks,
				AccumulatedMs: toMs(f.Accumulated),
				Zoom:          f.Zoom,
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
