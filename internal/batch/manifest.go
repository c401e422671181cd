package batch

import (
	"encoding/json"
	"os"
)

// Manifest describes a rendered sweep.
type Manifest struct {
	Source      string          `json:"source"`
	Joints      int             `json:"joints"`
	Direction   string          `json:"direction"`
	Perspective float64         `json:"perspective"`
	Format      string          `json:"format"`
	Frames      []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame     int       `json:"frame"`
	Angle     float64   `json:"angle"`
	Footprint Footprint `json:"footprint"`
	Image     string    `json:"image,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Footprint is the JSON form of a frame's footprint, in points.
type Footprint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewManifest builds a manifest from sweep results. Failed frames keep their
// error and have no image.
func NewManifest(cfg Config, source string, perspective float64, results []Result) Manifest {
	m := Manifest{
		Source:      source,
		Joints:      cfg.Joints,
		Direction:   cfg.Direction.String(),
		Perspective: perspective,
		Format:      cfg.Format.String(),
		Frames:      make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{
			Frame: r.Frame,
			Angle: r.Angle,
			Footprint: Footprint{
				X:      r.Footprint.X,
				Y:      r.Footprint.Y,
				Width:  r.Footprint.Width,
				Height: r.Footprint.Height,
			},
		}
		if r.Success {
			e.Image = r.File
		} else {
			e.Error = r.Error
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
