package document

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Genius6942/pathgen"
)

// Format selects an output format for trajectories.
type Format string

// Trajectories are written as a JSON array or as CSV with a header line.
const (
	JSON Format = "json"
	CSV  Format = "csv"
)

// ErrFormat indicates an unknown output format.
var ErrFormat = errors.New("unknown output format")

// Valid checks if f is a known output format.
func (f Format) Valid() error {
	if f != JSON && f != CSV {
		return fmt.Errorf("%w: %q", ErrFormat, f)
	}
	return nil
}

// PointExport is the output form of a trajectory point.
type PointExport struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Speed float64 `json:"speed"`
	Index int     `json:"index"`
}

// ExportTrajectory converts a trajectory to its output form. Coordinates and
// speeds within ε of zero are written as 0.
func ExportTrajectory(path []pathgen.GeneratedPoint) []PointExport {
	ex := make([]PointExport, len(path))
	for i, p := range path {
		pos := p.Position.Zap()
		ex[i] = PointExport{X: pos.X, Y: pos.Y, Speed: pathgen.Zap(p.Speed), Index: p.Index}
	}
	return ex
}

// WriteTrajectory writes a trajectory in format f.
func WriteTrajectory(w io.Writer, path []pathgen.GeneratedPoint, f Format) error {
	switch f {
	case JSON:
		return json.NewEncoder(w).Encode(ExportTrajectory(path))
	case CSV:
		out := csv.NewWriter(w)
		if err := out.Write([]string{"x", "y", "speed", "index"}); err != nil {
			return err
		}
		for _, p := range ExportTrajectory(path) {
			err := out.Write([]string{ftoa(p.X), ftoa(p.Y), ftoa(p.Speed), strconv.Itoa(p.Index)})
			if err != nil {
				return err
			}
		}
		out.Flush()
		return out.Error()
	}
	return f.Valid()
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
