package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

type Conf struct {
	Log    Log    `yaml:"log"`
	Stego  Stego  `yaml:"stego"`
	Output Output `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Conf {
	var c Conf
	c.setDefaults()
	return &c
}

func LoadFromFile(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var conf Conf
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	conf.setDefaults()
	if err := conf.Validate(); err != nil {
		return &conf, err
	}
	return &conf, nil
}

func (c *Conf) setDefaults() {
	c.Log.setDefaults()
	c.Stego.setDefaults()
	c.Output.setDefaults()
}

// Validate reports every invalid field at once.
func (c *Conf) Validate() error {
	var allErrors []error
	allErrors = append(allErrors, c.Log.validate()...)
	allErrors = append(allErrors, c.Stego.validate()...)
	allErrors = append(allErrors, c.Output.validate()...)
	return writeErr(allErrors)
}

func writeErr(allErrors []error) error {
	if len(allErrors) > 0 {
		var messages []string
		for _, err := range allErrors {
			messages = append(messages, err.Error())
		}
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(messages, "\n  - "))
	}
	return nil
}
