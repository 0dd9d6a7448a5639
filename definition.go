package mobileconfig

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Definition is a declarative description of one profile, typically
// loaded from a YAML file. It carries the same options Generate
// recognizes; unknown YAML keys are tolerated.
type Definition struct {
	Identifier           string            `yaml:"identifier"`
	UUID                 string            `yaml:"uuid"`
	Description          string            `yaml:"description"`
	DisplayName          string            `yaml:"displayname"`
	Organization         string            `yaml:"organization"`
	RemovalDisallowed    bool              `yaml:"removaldisallowed"`
	Scope                string            `yaml:"scope"`
	RemovalDate          time.Time         `yaml:"removaldate"`
	DurationUntilRemoval float64           `yaml:"durationuntilremoval"`
	ConsentText          map[string]string `yaml:"consenttext"`
	Content              []Payload         `yaml:"content"`
}

// LoadDefinition parses a YAML profile definition.
func LoadDefinition(raw []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parsing profile definition: %w", err)
	}
	if def.Identifier == "" {
		return nil, errors.New("profile definition is missing an identifier")
	}
	return &def, nil
}

// Options returns the ProfileOptions the definition describes.
func (d *Definition) Options() ProfileOptions {
	return ProfileOptions{
		Description:          d.Description,
		DisplayName:          d.DisplayName,
		Organization:         d.Organization,
		Content:              d.Content,
		RemovalDisallowed:    d.RemovalDisallowed,
		Scope:                d.Scope,
		RemovalDate:          d.RemovalDate,
		DurationUntilRemoval: d.DurationUntilRemoval,
		ConsentText:          d.ConsentText,
	}
}
