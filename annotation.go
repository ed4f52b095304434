package wavetag

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type (
	// Annotation is a labeled time region, in seconds.
	Annotation struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Label string  `json:"label"`
	}

	// AnnotationFile is the on-disk representation of an annotated track.
	// File is the base name of the audio file the annotations belong to.
	AnnotationFile struct {
		File        string       `json:"file"`
		Duration    float64      `json:"duration"`
		Annotations []Annotation `json:"annotations"`
	}
)

var ErrMissingLabel = errors.New("missing label")

// Width returns the length of the annotation in seconds.
func (a Annotation) Width() float64 { return a.End - a.Start }

// Contains reports whether time t falls within the annotation.
func (a Annotation) Contains(t float64) bool { return t >= a.Start && t <= a.End }

// Write writes the file as indented JSON.
func (f *AnnotationFile) Write(w io.Writer) error {
	if f.Annotations == nil {
		f.Annotations = []Annotation{}
	}
	b, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return fmt.Errorf("could not marshal annotations: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("could not write annotations: %w", err)
	}
	return nil
}

// ReadAnnotationFile parses an annotation file. Each annotation must have a
// label and a non-negative, ordered time range.
func ReadAnnotationFile(r io.Reader) (*AnnotationFile, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read annotation file: %w", err)
	}
	var f AnnotationFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("could not parse annotation file: %w", err)
	}
	for i, a := range f.Annotations {
		if a.Start < 0 || a.End < a.Start {
			return nil, fmt.Errorf("annotation %d: invalid range %v-%v", i+1, a.Start, a.End)
		}
		if a.Label == "" {
			return nil, fmt.Errorf("annotation %d: %w", i+1, ErrMissingLabel)
		}
	}
	return &f, nil
}

// AnnotationPath returns the default annotation file path for an audio file:
// the same path with the extension replaced by .json.
func AnnotationPath(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".json"
}
