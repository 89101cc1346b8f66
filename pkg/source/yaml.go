package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/record"
)

// seedFile is the on-disk YAML layout:
//
//	events:
//	  - {id: e1, title: Sync, day: 5, time: "09:00", lane: Board}
//	records:
//	  - {id: r1, title: Alpha, category: Documents, updated: 2024-01-01}
type seedFile struct {
	Events  []event.Event   `yaml:"events"`
	Records []record.Record `yaml:"records"`
}

// YAMLSource reads a YAML seed file on every call so reloads see edits.
type YAMLSource struct {
	Path string
}

// YAML returns a source backed by the YAML file at path.
func YAML(path string) *YAMLSource {
	return &YAMLSource{Path: path}
}

func (s *YAMLSource) read(ctx context.Context) (*seedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", s.Path, err)
	}
	seed := &seedFile{}
	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, fmt.Errorf("source: parse %s: %w", s.Path, err)
	}
	return seed, nil
}

// Events implements Source.
func (s *YAMLSource) Events(ctx context.Context) ([]event.Event, error) {
	seed, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return seed.Events, nil
}

// Records implements Source.
func (s *YAMLSource) Records(ctx context.Context) ([]record.Record, error) {
	seed, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return seed.Records, nil
}

// Describe implements Describer.
func (s *YAMLSource) Describe() string {
	return "yaml:" + s.Path
}

// WriteYAML writes events and records in the seed layout YAML reads. Used by
// the seed export command.
func WriteYAML(path string, events []event.Event, records []record.Record) error {
	data, err := yaml.Marshal(&seedFile{Events: events, Records: records})
	if err != nil {
		return fmt.Errorf("source: encode seed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("source: write %s: %w", path, err)
	}
	return nil
}
