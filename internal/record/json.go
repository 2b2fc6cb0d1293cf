package record

import (
	"encoding/json"
	"io"

	"github.com/san-kum/rotsim/internal/dynamo"
)

// Export is the JSON document written for one run.
type Export struct {
	Name       string             `json:"name"`
	Mode       string             `json:"mode"`
	Integrator string             `json:"integrator"`
	Step       float64            `json:"step"`
	Duration   float64            `json:"duration"`
	Ticks      int                `json:"ticks"`
	Metrics    map[string]float64 `json:"metrics"`
	Samples    []Row              `json:"samples"`
}

// Row is a sample with its quaternion spelled out as [w, x, y, z].
type Row struct {
	dynamo.Sample
	Quaternion [4]float64 `json:"quaternion"`
}

func Rows(samples []dynamo.Sample) []Row {
	rows := make([]Row, len(samples))
	for i, s := range samples {
		rows[i] = Row{Sample: s, Quaternion: s.QuatWXYZ()}
	}
	return rows
}

func WriteJSON(w io.Writer, data Export) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
