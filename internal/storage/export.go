package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Frames []StepRecord `json:"frames"`
}

// ExportJSON writes a saved run, metadata and every step, as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	steps, err := s.LoadSteps(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Frames: steps})
}
