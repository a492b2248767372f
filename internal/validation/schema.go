// Package validation checks score documents and project configuration files
// against their embedded JSON Schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spboyer/pagescore/schemas"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// scoreSchema is the compiled JSON Schema for score documents.
var scoreSchema *jsonschema.Schema

// configSchema is the compiled JSON Schema for .pagescore.yaml.
var configSchema *jsonschema.Schema

func init() {
	scoreSchema = mustCompileSchema(schemas.ScoreSchemaJSON, "score.schema.json")
	configSchema = mustCompileSchema(schemas.ConfigSchemaJSON, "config.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// Kind selects the schema a file is validated against.
type Kind string

const (
	KindDocument Kind = "document"
	KindConfig   Kind = "config"
)

// ValidateFile reads path and validates it as the given kind. The returned
// slice lists every violation as "<instance path>: <message>"; err is only
// set when the file cannot be read.
func ValidateFile(path string, kind Kind) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s file: %w", kind, err)
	}
	switch kind {
	case KindConfig:
		return ValidateConfigBytes(data), nil
	case KindDocument:
		return ValidateDocumentBytes(data), nil
	default:
		return nil, fmt.Errorf("unknown validation kind %q", kind)
	}
}

// ValidateDocumentBytes validates a JSON or YAML score document.
func ValidateDocumentBytes(data []byte) []string {
	return validateBytes(scoreSchema, data)
}

// ValidateConfigBytes validates a .pagescore.yaml file.
func ValidateConfigBytes(data []byte) []string {
	return validateBytes(configSchema, data)
}

func validateBytes(schema *jsonschema.Schema, data []byte) []string {
	doc, err := parseInstance(data)
	if err != nil {
		return []string{err.Error()}
	}
	return validateAgainstSchema(schema, convertToJSONCompatible(doc))
}

// parseInstance decodes YAML (a superset of most JSON). JSON that yaml.v3
// rejects, such as tab-indented files, is retried with the jsonschema decoder.
func parseInstance(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("/: document is empty")
	}
	var doc any
	yamlErr := yaml.Unmarshal(data, &doc)
	if yamlErr == nil {
		return doc, nil
	}
	if jsonDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data)); err == nil {
		return jsonDoc, nil
	}
	return nil, fmt.Errorf("YAML parse error: %v", yamlErr)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	sort.Strings(errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible rewrites map[any]any values produced by yaml.v3 for
// non-string keys into map[string]any, which the schema validator requires.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[fmt.Sprint(k)] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
