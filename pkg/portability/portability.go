// Package portability loads and exports simulation documents.
//
// Documents are read from JSON or YAML files (by extension), from
// directories, or from glob patterns with ** support. Multiple documents
// merge into one simulation by pair-set union, with the last document's
// global actions winning.
package portability

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/simwire/simwire/pkg/simulation"
	"gopkg.in/yaml.v3"
)

// Load reads one simulation document from a file, selecting the format by
// extension (.json, .yaml, .yml).
func Load(path string) (*simulation.Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return simulation.ParseSimulation(data)
	}
}

// LoadAll loads every file matched by the given patterns and merges the
// documents. Patterns may be plain paths, directories (loaded
// non-recursively), or globs with ** support. Matches are sorted for
// deterministic merge order.
func LoadAll(patterns ...string) (*simulation.Simulation, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := expand(pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no simulation files matched %v", patterns)
	}
	sort.Strings(files)

	sims := make([]*simulation.Simulation, 0, len(files))
	for _, file := range files {
		sim, err := Load(file)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return Merge(sims...), nil
}

func expand(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil {
		if !info.IsDir() {
			return []string{pattern}, nil
		}
		entries, err := os.ReadDir(pattern)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", pattern, err)
		}
		var files []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(entry.Name())) {
			case ".json", ".yaml", ".yml":
				files = append(files, filepath.Join(pattern, entry.Name()))
			}
		}
		return files, nil
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding glob %q: %w", pattern, err)
	}
	return matches, nil
}

// Merge combines simulations by pair-set union in argument order;
// duplicate pairs collapse. The last non-empty global actions wins.
func Merge(sims ...*simulation.Simulation) *simulation.Simulation {
	var pairs []simulation.RequestResponsePair
	var actions *simulation.GlobalActions
	for _, sim := range sims {
		if sim == nil {
			continue
		}
		pairs = append(pairs, sim.Pairs()...)
		if !sim.Data.GlobalActions.IsEmpty() {
			actions = sim.Data.GlobalActions
		}
	}
	return simulation.NewSimulation(pairs, actions)
}

// ExportJSON serializes a simulation in canonical indented form.
func ExportJSON(sim *simulation.Simulation) ([]byte, error) {
	return json.MarshalIndent(sim, "", "  ")
}

// ExportYAML serializes a simulation as YAML. The document is routed
// through its JSON form so the wire field names stay authoritative.
func ExportYAML(sim *simulation.Simulation) ([]byte, error) {
	data, err := json.Marshal(sim)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}

// Save writes a simulation to a file, selecting the format by extension.
func Save(sim *simulation.Simulation, path string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = ExportYAML(sim)
	default:
		data, err = ExportJSON(sim)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// parseYAML accepts the same document shape as JSON, with YAML syntax.
// The tree is converted to JSON and parsed by the canonical path so that
// fault tolerance and validation behave identically for both formats.
func parseYAML(data []byte) (*simulation.Simulation, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, &simulation.SchemaError{Reason: err.Error()}
	}
	jsonData, err := json.Marshal(tree)
	if err != nil {
		return nil, &simulation.SchemaError{Reason: err.Error()}
	}
	return simulation.ParseSimulation(jsonData)
}
