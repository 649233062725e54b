package log

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes logger settings loaded from a yaml file.
// Filters uses the zapfilter rule syntax.
type Config struct {
	DefaultLevel string `yaml:"defaultLevel"`
	Filters      string `yaml:"filters"`
}

func LoadConfig(fileName string) (*Config, error) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	ret := &Config{DefaultLevel: "info"}
	if err := yaml.Unmarshal(content, ret); err != nil {
		return nil, fmt.Errorf("could not parse log config %s: %w", fileName, err)
	}
	return ret, nil
}
