// Package storage keeps finished runs on disk, one directory per run holding
// the metadata, the reproducible config and the recorded samples.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/record"
	"github.com/san-kum/rotsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
	samplesFile  = "samples.csv"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Mode       string             `json:"mode"`
	Timestamp  time.Time          `json:"timestamp"`
	Step       float64            `json:"step"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Correction bool               `json:"correction"`
	Ticks      int                `json:"ticks"`
	Samples    int                `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run and returns its ID. IDs are the config name (or the
// torque mode) plus a Unix timestamp, with a counter appended on collision.
func (s *Store) Save(cfg *config.Config, result *sim.Result, samples []dynamo.Sample) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	prefix := cfg.Name
	if prefix == "" {
		prefix = cfg.Torque.Mode
	}
	ts := s.now()
	runID, runDir, err := s.mkdir(fmt.Sprintf("%s_%d", prefix, ts.Unix()))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       cfg.Name,
		Mode:       cfg.Torque.Mode,
		Timestamp:  ts,
		Step:       cfg.Step,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Correction: cfg.Correction,
		Samples:    len(samples),
	}
	if result != nil {
		meta.Ticks = result.Ticks
		meta.Metrics = result.Metrics
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := record.WriteCSV(f, samples); err != nil {
		return "", err
	}
	return runID, f.Close()
}

func (s *Store) mkdir(base string) (string, string, error) {
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func (s *Store) LoadSamples(runID string) ([]dynamo.Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}
	defer f.Close()
	return record.ReadCSV(f)
}
