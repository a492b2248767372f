// Package schemas embeds the JSON Schemas for pagescore input files.
package schemas

import _ "embed"

// ScoreSchemaJSON describes a score request document.
//
//go:embed score.schema.json
var ScoreSchemaJSON string

// ConfigSchemaJSON describes a .pagescore.yaml project configuration file.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
