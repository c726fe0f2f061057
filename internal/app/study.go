package app

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"radview/internal/annotation"
)

// StudyFile is the JSON structure of a saved study (.rvstudy). Only the
// per-image annotation/measurement collections and the default draw
// settings cross sessions; zoom, pan, tool mode, and history are transient.
type StudyFile struct {
	Version int          `json:"version"`
	Images  []StudyImage `json:"images"`

	DefaultColor       color.RGBA `json:"default_color"`
	DefaultStrokeWidth float64    `json:"default_stroke_width"`
}

// StudyImage holds one image's persisted collections.
type StudyImage struct {
	ID           string                   `json:"id"`
	Path         string                   `json:"path,omitempty"`
	Annotations  []annotation.Annotation  `json:"annotations,omitempty"`
	Measurements []annotation.Measurement `json:"measurements,omitempty"`
}

// Study builds the persistable view of the state.
func (s *State) Study() StudyFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	study := StudyFile{
		Version:            1,
		DefaultColor:       s.defaultColor,
		DefaultStrokeWidth: s.defaultWidth,
	}
	for id, e := range s.entities {
		if len(e.Annotations) == 0 && len(e.Measurements) == 0 {
			continue
		}
		img := StudyImage{
			ID:           id,
			Annotations:  e.Annotations,
			Measurements: e.Measurements,
		}
		if l, ok := s.layers[id]; ok {
			img.Path = l.Path
		}
		study.Images = append(study.Images, img)
	}
	return study
}

// SaveStudy writes the persistable state to path as indented JSON.
func (s *State) SaveStudy(path string) error {
	data, err := json.MarshalIndent(s.Study(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode study: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write study: %w", err)
	}
	return nil
}

// ReadStudy parses a study file from disk.
func ReadStudy(path string) (StudyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StudyFile{}, fmt.Errorf("failed to read study: %w", err)
	}
	var study StudyFile
	if err := json.Unmarshal(data, &study); err != nil {
		return StudyFile{}, fmt.Errorf("failed to parse study: %w", err)
	}
	return study, nil
}

// LoadStudy merges a study file into the state: each image's collections
// replace the in-memory ones, and the default draw settings are restored.
// The history stack is not part of a study and stays empty.
func (s *State) LoadStudy(path string) error {
	study, err := ReadStudy(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for _, img := range study.Images {
		e, ok := s.entities[img.ID]
		if !ok {
			e = &imageEntities{}
			s.entities[img.ID] = e
		}
		e.Annotations = img.Annotations
		e.Measurements = img.Measurements
	}
	if study.DefaultStrokeWidth > 0 {
		s.defaultWidth = study.DefaultStrokeWidth
	}
	if study.DefaultColor.A != 0 {
		s.defaultColor = study.DefaultColor
	}
	s.hist.Reset()
	s.selection = Selection{}
	s.mu.Unlock()

	s.Emit(EventEntitiesChanged, nil)
	return nil
}
