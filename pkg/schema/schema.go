// Package schema holds the canonical JSON schema for classified
// documents and validates serialized results against it.
package schema

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// FS embeds the canonical document schema.
//
//go:embed region-schema.json
var FS embed.FS

// schemaFile is the embedded schema file name.
const schemaFile = "region-schema.json"

// Loader returns a loader for the embedded document schema.
func Loader() (gojsonschema.JSONLoader, error) {
	raw, err := FS.ReadFile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("schema: read embedded schema: %w", err)
	}

	return gojsonschema.NewBytesLoader(raw), nil
}

// Validate checks a serialized document against the embedded schema.
func Validate(document []byte) (*gojsonschema.Result, error) {
	loader, err := Loader()
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(loader, gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("schema: validate: %w", err)
	}

	return result, nil
}
