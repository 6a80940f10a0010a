package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/boarding-sim/boarding-sim/sim"
)

// Define struct for YAML
type LayoutFile struct {
	Layouts map[string]sim.LayoutConfig `yaml:"layouts"`
}

// GetLayoutConfig loads a named cabin preset from a YAML file. Returns nil
// when the preset is absent so the caller decides how to fail.
func GetLayoutConfig(layoutFilePath string, layoutName string) *sim.LayoutConfig {
	// Read YAML file
	data, err := os.ReadFile(layoutFilePath)
	if err != nil {
		panic(err)
	}

	// Parse YAML
	var cfg LayoutFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(err)
	}

	if layout, layoutExists := cfg.Layouts[layoutName]; layoutExists {
		logrus.Infof("Using preset layout %v", layoutName)
		return &layout
	}
	return nil
}
