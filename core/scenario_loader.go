// core/scenario_loader.go
package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/signalsfoundry/cbtc-topology/model"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for scenario files whose format cannot be
// determined.
var ErrUnknownFormat = errors.New("unknown scenario format")

// Format names a scenario file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// scenarioFile is the on-disk shape. A file holds either one scenario at
// the top level or a list under "scenarios".
type scenarioFile struct {
	model.ScenarioDefinition `yaml:",inline"`

	Scenarios []model.ScenarioDefinition `json:"scenarios" yaml:"scenarios" toml:"scenarios"`
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// LoadScenarios decodes one or more scenario definitions from r and
// fills omitted run parameters from DefaultConfig. Every returned
// scenario has a valid config and a usable node source.
func LoadScenarios(r io.Reader, format Format) ([]model.ScenarioDefinition, error) {
	var payload scenarioFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&payload); err != nil {
			return nil, fmt.Errorf("LoadScenarios: decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&payload); err != nil {
			return nil, fmt.Errorf("LoadScenarios: decode yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&payload); err != nil {
			return nil, fmt.Errorf("LoadScenarios: decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	defs := payload.Scenarios
	if len(defs) == 0 {
		defs = []model.ScenarioDefinition{payload.ScenarioDefinition}
	}

	for i := range defs {
		applyDefaults(&defs[i], i)
		if err := ConfigFromScenario(defs[i]).Validate(); err != nil {
			return nil, fmt.Errorf("LoadScenarios: scenario %q: %w", defs[i].ID, err)
		}
		if len(defs[i].Nodes) == 0 && defs[i].Placement == nil {
			return nil, fmt.Errorf("LoadScenarios: scenario %q: %w", defs[i].ID, ErrEmptyNetwork)
		}
	}
	return defs, nil
}

// LoadScenarioFile opens path and decodes it using the format implied by
// its extension.
func LoadScenarioFile(path string) ([]model.ScenarioDefinition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadScenarioFile: %w", err)
	}
	defer f.Close()
	return LoadScenarios(f, format)
}

// applyDefaults fills zero-valued run parameters. Booleans default to
// false, which is also their zero value.
func applyDefaults(def *model.ScenarioDefinition, pos int) {
	d := DefaultConfig()
	if def.ID == "" {
		def.ID = fmt.Sprintf("scenario-%d", pos+1)
	}
	if def.Title == "" {
		def.Title = def.ID
	}
	if def.ConeAngle == 0 {
		def.ConeAngle = d.ConeAngle
	}
	if def.InitialPower == 0 {
		def.InitialPower = d.InitialPower
	}
	if def.MaxPower == 0 {
		def.MaxPower = max(d.MaxPower, def.InitialPower)
	}
	if def.GrowthFactor == 0 {
		def.GrowthFactor = d.GrowthFactor
	}
}
