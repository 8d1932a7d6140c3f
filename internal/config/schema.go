package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// Schema returns the JSON schema of the configuration file.
func Schema() (string, error) {
	return ToJSONSchema(Config{})
}

// DefaultYAML renders the built-in defaults as a config file.
// Durations are kept in their string form ("2m") so the output loads back unchanged.
func DefaultYAML() ([]byte, error) {
	v := viper.New()
	setDefaults(v)

	out, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to render default config", err)
	}

	return out, nil
}
