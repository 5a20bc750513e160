package config

import (
	"errors"
	"strings"

	"github.com/adrianliechti/narrator/pkg/policy/opa"
)

type policyConfig struct {
	Type string `yaml:"type"`

	File   string `yaml:"file"`
	Module string `yaml:"module"`
}

func (c *Config) registerPolicy(f *configFile) error {
	if f.Policy == nil {
		return nil
	}

	switch strings.ToLower(f.Policy.Type) {
	case "opa":
		if f.Policy.Module != "" {
			p, err := opa.New(f.Policy.Module)

			if err != nil {
				return err
			}

			c.Policy = p
			return nil
		}

		p, err := opa.NewFromFile(f.Policy.File)

		if err != nil {
			return err
		}

		c.Policy = p
		return nil

	default:
		return errors.New("invalid policy type: " + f.Policy.Type)
	}
}
