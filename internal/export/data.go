package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/gwave/internal/config"
	"github.com/san-kum/gwave/internal/dynamo"
	"github.com/san-kum/gwave/internal/sim"
)

// Metadata identifies a coordinate dump and the config that produced it.
type Metadata struct {
	RunID       string    `json:"run_id"`
	Preset      string    `json:"preset,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	Created     time.Time `json:"created"`
	Amplitude   float64   `json:"amplitude"`
	Ellipticity float64   `json:"ellipticity"`
	Theta       float64   `json:"theta"`
	Period      int       `json:"period"`
}

func NewMetadata(cfg *config.Config, preset string) Metadata {
	return Metadata{
		RunID:       uuid.NewString(),
		Preset:      preset,
		Fingerprint: cfg.Fingerprint(),
		Created:     time.Now().UTC(),
		Amplitude:   cfg.Wave.Amplitude,
		Ellipticity: cfg.Wave.Ellipticity,
		Theta:       cfg.Wave.Theta,
		Period:      cfg.Animation.Frames,
	}
}

// CSV layers.
const (
	LayerPoint = "point"
	LayerRest  = "rest"
	LayerGrid  = "grid"
	LayerTrace = "trace"
)

var csvHeader = []string{"frame", "phase", "layer", "series", "index", "x", "y"}

// WriteCSV writes one row per coordinate. The run metadata is written as
// leading '#' comment lines.
func WriteCSV(w io.Writer, meta Metadata, frames []sim.FrameOutput) error {
	if _, err := fmt.Fprintf(w, "# run_id=%s\n# fingerprint=%s\n", meta.RunID, meta.Fingerprint); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, f := range frames {
		frame := strconv.Itoa(f.Frame)
		phase := strconv.FormatFloat(f.Phase, 'g', -1, 64)

		rows := func(layer, series string, b dynamo.Batch) error {
			for i, p := range b {
				row := []string{
					frame, phase, layer, series, strconv.Itoa(i),
					strconv.FormatFloat(p.X, 'g', -1, 64),
					strconv.FormatFloat(p.Y, 'g', -1, 64),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		}

		for _, pf := range f.Probes {
			if err := rows(LayerPoint, pf.Name, pf.Points); err != nil {
				return err
			}
			if err := rows(LayerRest, pf.Name, pf.Rest); err != nil {
				return err
			}
			if err := rows(LayerTrace, pf.Name, pf.Trace); err != nil {
				return err
			}
		}
		for i, g := range f.Grid {
			if err := rows(LayerGrid, strconv.Itoa(i), g); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonProbe struct {
	Name       string       `json:"name"`
	Center     [2]float64   `json:"center"`
	Points     [][2]float64 `json:"points"`
	Edges      [][2]float64 `json:"edges,omitempty"`
	Highlights []int        `json:"highlights,omitempty"`
	Trace      [][2]float64 `json:"trace,omitempty"`
}

type jsonFrame struct {
	Frame  int            `json:"frame"`
	Phase  float64        `json:"phase"`
	Probes []jsonProbe    `json:"probes"`
	Grid   [][][2]float64 `json:"grid,omitempty"`
}

type ExportData struct {
	Metadata
	Frames  int                `json:"frames"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
	Data    []jsonFrame        `json:"data"`
}

func pairs(b dynamo.Batch) [][2]float64 {
	if b == nil {
		return nil
	}
	out := make([][2]float64, len(b))
	for i, p := range b {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// WriteJSON writes the frames and metrics as one indented JSON document.
// Trails are omitted; they are the concatenation of earlier frames.
func WriteJSON(w io.Writer, meta Metadata, frames []sim.FrameOutput, metrics map[string]float64) error {
	data := ExportData{
		Metadata: meta,
		Frames:   len(frames),
		Metrics:  metrics,
		Data:     make([]jsonFrame, len(frames)),
	}

	for i, f := range frames {
		jf := jsonFrame{Frame: f.Frame, Phase: f.Phase, Probes: make([]jsonProbe, len(f.Probes))}
		for j, pf := range f.Probes {
			jf.Probes[j] = jsonProbe{
				Name:       pf.Name,
				Center:     [2]float64{pf.Center.X, pf.Center.Y},
				Points:     pairs(pf.Points),
				Edges:      pairs(pf.Edges),
				Highlights: pf.Highlights,
				Trace:      pairs(pf.Trace),
			}
		}
		for _, g := range f.Grid {
			jf.Grid = append(jf.Grid, pairs(g))
		}
		data.Data[i] = jf
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
