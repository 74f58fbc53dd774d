// Package parser parses test case fixture metadata.
package parser

import (
	"gopkg.in/yaml.v3"

	"github.com/davidchisnall/microvium/domain/entities"
	mverrors "github.com/davidchisnall/microvium/domain/errors"
	"github.com/davidchisnall/microvium/domain/ports"
)

// YamlFixtureParser implements ports.FixtureParser for YAML metadata.
type YamlFixtureParser struct{}

// NewYamlFixtureParser creates a new YamlFixtureParser.
func NewYamlFixtureParser() ports.FixtureParser {
	return &YamlFixtureParser{}
}

// Parse unmarshals YAML bytes into a Fixture.
func (p *YamlFixtureParser) Parse(data []byte) (*entities.Fixture, error) {
	var fixture entities.Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, &mverrors.FixtureError{Err: err}
	}
	return &fixture, nil
}
