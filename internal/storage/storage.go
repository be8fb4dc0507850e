// Package storage provides access to HMM model and observation sequence files.
//
// A data folder holds pairs of files named <case>_hmm.<ext> and
// <case>_sequences.<ext>, where ext is json, yaml or yml.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/happyhackingspace/hmm/markov"
)

const (
	modelSuffix    = "_hmm"
	sequenceSuffix = "_sequences"
)

// Storage wraps a data folder.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given data folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// Cases lists every model file that has a matching sequence file, sorted by case name.
func (s *Storage) Cases() ([]Case, error) {
	entries, err := os.ReadDir(s.Folder)
	if err != nil {
		return nil, err
	}

	models := make(map[string]string)
	sequences := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !Supported(ext) {
			continue
		}
		base := strings.TrimSuffix(name, ext)
		path := filepath.Join(s.Folder, name)
		switch {
		case strings.HasSuffix(base, modelSuffix):
			models[strings.TrimSuffix(base, modelSuffix)] = path
		case strings.HasSuffix(base, sequenceSuffix):
			sequences[strings.TrimSuffix(base, sequenceSuffix)] = path
		}
	}

	for name, path := range sequences {
		if _, ok := models[name]; !ok {
			slog.Warn("Sequence file has no model", "case", name, "path", path)
		}
	}

	cases := make([]Case, 0, len(models))
	for name, modelPath := range models {
		seqPath, ok := sequences[name]
		if !ok {
			slog.Warn("Model file has no sequence file", "case", name, "path", modelPath)
			continue
		}
		cases = append(cases, Case{Name: name, ModelPath: modelPath, SequencePath: seqPath})
	}
	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})
	return cases, nil
}

// Supported reports whether files with the given extension can be read.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ReadModel reads model parameters from a JSON or YAML file.
func ReadModel(path string) (*markov.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeModel(data, filepath.Ext(path))
}

// DecodeModel decodes model parameters encoded in the format named by ext.
func DecodeModel(data []byte, ext string) (*markov.Params, error) {
	var p markov.Params
	if err := unmarshal(data, ext, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// WriteModel writes model parameters to path, in the format its extension names.
func WriteModel(path string, p markov.Params) error {
	return writeFile(path, p)
}

// ReadSequence reads an observation sequence file.
func ReadSequence(path string) (*SequenceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf SequenceFile
	if err := unmarshal(data, filepath.Ext(path), &sf); err != nil {
		return nil, err
	}
	return &sf, nil
}

// WriteSequence writes an observation sequence file.
func WriteSequence(path string, sf SequenceFile) error {
	return writeFile(path, sf)
}

func unmarshal(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".json":
		return json.Unmarshal(data, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	}
	return fmt.Errorf("unsupported file extension %q", ext)
}

func writeFile(path string, v any) error {
	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(v, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
