package application

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Component identity, surfaced to hosts through ComponentInfo.
const (
	ComponentID      = "ai.greentic.component-templates"
	ComponentName    = "templates"
	ComponentOrg     = "ai.greentic"
	ComponentVersion = "0.1.2"
	ComponentRole    = "tool"
)

// Info describes the component to its host. DisplayNameKey is a translation
// key the host resolves for its own UI.
type Info struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Org            string `json:"org"`
	Version        string `json:"version"`
	Role           string `json:"role"`
	DisplayNameKey string `json:"display_name_key"`
}

func ComponentInfo() Info {
	return Info{
		ID:             ComponentID,
		Name:           ComponentName,
		Org:            ComponentOrg,
		Version:        ComponentVersion,
		Role:           ComponentRole,
		DisplayNameKey: "component.display_name",
	}
}

// configSchemaJSON is the configuration contract published to hosts: a
// required templates object whose text is a non-empty string, with optional
// non-empty output_path/routing strings and a wrap boolean, and nothing else.
const configSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "templates": {
      "type": "object",
      "properties": {
        "text": {"type": "string", "minLength": 1},
        "output_path": {"type": "string", "minLength": 1},
        "routing": {"type": "string", "minLength": 1},
        "wrap": {"type": "boolean"}
      },
      "required": ["text"],
      "additionalProperties": false
    }
  },
  "required": ["templates"],
  "additionalProperties": false
}`

// ConfigSchemaJSON returns the schema document for hosts that validate on
// their own side.
func ConfigSchemaJSON() []byte {
	return []byte(configSchemaJSON)
}

var (
	schemaOnce   sync.Once
	configSchema *jsonschema.Schema
)

func compiledConfigSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)
	})
	return configSchema
}

// ValidateConfig checks a configuration document against the published
// schema. The document must be the product of a JSON decode (or of
// ApplyAnswers, which preserves that shape).
func ValidateConfig(doc any) error {
	return compiledConfigSchema().Validate(doc)
}
