package swagger

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
)

// OpenAPI contains the embedded OpenAPI YAML specification.
//
//go:embed openapi.yaml
var OpenAPI []byte

// OpenAPIJSON returns the embedded document converted to JSON. The
// conversion runs once.
var OpenAPIJSON = sync.OnceValues(func() ([]byte, error) {
	doc, err := yaml.Parser().Unmarshal(OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("parse openapi.yaml: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi json: %w", err)
	}
	return out, nil
})
