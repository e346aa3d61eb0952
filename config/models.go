package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type modelsFile struct {
	Models []string `yaml:"models"`
}

// LoadModels reads the YAML model list, e.g.:
//
//	models:
//	  - Pixel 9 Pro XL
//	  - iPhone 14 Pro Max
func LoadModels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read models file %q: %w", path, err)
	}

	var mf modelsFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("config: parse models file %q: %w", path, err)
	}
	if len(mf.Models) == 0 {
		return nil, fmt.Errorf("config: models file %q lists no models", path)
	}
	return mf.Models, nil
}
