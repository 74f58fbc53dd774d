package parser

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/davidchisnall/microvium/domain/entities"
)

// FixtureSchema returns the JSON Schema of the fixture format. The
// snapshot compiler's tooling validates generated metadata against it.
func FixtureSchema() ([]byte, error) {
	s := jsonschema.Reflect(&entities.Fixture{})
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal fixture schema: %w", err)
	}
	return data, nil
}
