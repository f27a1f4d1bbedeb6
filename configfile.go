package objectcount

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cvkit/go-objectcount/geometry"
)

// PointConfig is the serialized form of a geometry point
type PointConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// LineConfig is the serialized form of a LineDefinition.  Endpoint order
// is written and read back verbatim, it encodes the crossing direction.
type LineConfig struct {
	ID    string      `yaml:"id"`
	Name  string      `yaml:"name,omitempty"`
	Start PointConfig `yaml:"start"`
	End   PointConfig `yaml:"end"`
	// Classes is absent when all classes are enabled and an explicit
	// empty list when none are
	Classes *[]int `yaml:"classes,omitempty"`
}

// ZoneConfig is the serialized form of a ZoneDefinition.  Vertex order is
// written and read back verbatim.
type ZoneConfig struct {
	ID      string        `yaml:"id"`
	Name    string        `yaml:"name,omitempty"`
	Points  []PointConfig `yaml:"points"`
	Classes *[]int        `yaml:"classes,omitempty"`
}

// ConfigFile is the on-disk representation of a set of counting line and
// zone definitions
type ConfigFile struct {
	Lines []LineConfig `yaml:"lines"`
	Zones []ZoneConfig `yaml:"zones"`
}

// classesToConfig converts a ClassSet to its serialized list.  A nil set
// (all classes) serializes as an absent key, an explicit empty set as an
// empty list.
func classesToConfig(s ClassSet) *[]int {

	if s == nil {
		return nil
	}

	ids := s.IDs()

	if ids == nil {
		ids = []int{}
	}

	return &ids
}

// classesFromConfig converts a serialized class list back to a ClassSet
func classesFromConfig(ids *[]int) ClassSet {

	if ids == nil {
		return nil
	}

	return NewClassSet(*ids...)
}

// NewConfigFile builds the serializable form of the given definitions
func NewConfigFile(lines []LineDefinition, zones []ZoneDefinition) *ConfigFile {

	cf := &ConfigFile{}

	for _, d := range lines {
		cf.Lines = append(cf.Lines, LineConfig{
			ID:      d.ID,
			Name:    d.Name,
			Start:   PointConfig{X: d.P1.X, Y: d.P1.Y},
			End:     PointConfig{X: d.P2.X, Y: d.P2.Y},
			Classes: classesToConfig(d.Classes),
		})
	}

	for _, d := range zones {

		zc := ZoneConfig{
			ID:      d.ID,
			Name:    d.Name,
			Classes: classesToConfig(d.Classes),
		}

		for _, v := range d.Vertices {
			zc.Points = append(zc.Points, PointConfig{X: v.X, Y: v.Y})
		}

		cf.Zones = append(cf.Zones, zc)
	}

	return cf
}

// Definitions converts the file contents back into validated definitions.
// Loaded geometry goes through the same validation as AddLine/AddZone.
func (cf *ConfigFile) Definitions() ([]LineDefinition, []ZoneDefinition, error) {

	var lines []LineDefinition
	var zones []ZoneDefinition

	for _, c := range cf.Lines {

		d := LineDefinition{
			ID:      c.ID,
			Name:    c.Name,
			P1:      geometry.Pt(c.Start.X, c.Start.Y),
			P2:      geometry.Pt(c.End.X, c.End.Y),
			Classes: classesFromConfig(c.Classes),
		}

		if err := d.Validate(); err != nil {
			return nil, nil, err
		}

		lines = append(lines, d)
	}

	for _, c := range cf.Zones {

		d := ZoneDefinition{
			ID:      c.ID,
			Name:    c.Name,
			Classes: classesFromConfig(c.Classes),
		}

		for _, p := range c.Points {
			d.Vertices = append(d.Vertices, geometry.Pt(p.X, p.Y))
		}

		if err := d.Validate(); err != nil {
			return nil, nil, err
		}

		zones = append(zones, d)
	}

	return lines, zones, nil
}

// SaveConfigFile writes the given definitions to a YAML file
func SaveConfigFile(path string, lines []LineDefinition, zones []ZoneDefinition) error {

	data, err := yaml.Marshal(NewConfigFile(lines, zones))

	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// LoadConfigFile reads and validates definitions from a YAML file
func LoadConfigFile(path string) ([]LineDefinition, []ZoneDefinition, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cf ConfigFile

	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cf.Definitions()
}
