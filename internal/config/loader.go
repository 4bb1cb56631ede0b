// Package config loads the JSON configuration file and checks it against a
// structural schema before the domain rules ever see it. Structural problems
// (wrong types, missing required fields, out-of-range list sizes) are
// reported as schema violations; value-level rules live in internal/validate.
package config

import (
	"encoding/json"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/repofetch/repofetch/internal/domain"
)

// Schema mirrors the configuration contract: required username and a list of
// 1 to 10 repository names, plus the optional path/timeout/metrics extensions.
const Schema = `{
  "type": "object",
  "properties": {
    "username": {"type": "string"},
    "repositories": {
      "type": "array",
      "items": {"type": "string"},
      "minItems": 1,
      "maxItems": 10
    },
    "path": {
      "type": "object",
      "properties": {
        "output_path": {"type": "string"},
        "log_path": {"type": "string"}
      },
      "additionalProperties": false
    },
    "timeout": {"type": "integer"},
    "metrics": {
      "type": "object",
      "additionalProperties": {"type": "boolean"}
    }
  },
  "required": ["username", "repositories"]
}`

// Sample is the reference configuration printed by the sample command.
const Sample = `{
  "username": "octocat",
  "repositories": ["Hello-World", "Spoon-Knife"],
  "path": {
    "output_path": "output/repo_stats.csv",
    "log_path": "output/repofetch.log"
  },
  "timeout": 30,
  "metrics": {
    "stars": true,
    "forks": true,
    "branches": true,
    "commits": true
  }
}`

// Load reads, parses and structurally validates the configuration file at
// path. Failures are classified: missing/irregular file, malformed JSON,
// schema violation, or a required field absent after decoding.
func Load(path string) (*domain.Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.WrapE(domain.KindConfigNotFound, err, "config file %q not found", path)
	}
	if !info.Mode().IsRegular() {
		return nil, domain.E(domain.KindConfigNotFound, "config file %q is not a regular file", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapE(domain.KindConfigNotFound, err, "cannot read config file %q", path)
	}
	return Parse(raw)
}

// Parse decodes raw JSON configuration bytes, running the structural schema
// check before decoding into the domain type.
func Parse(raw []byte) (*domain.Config, error) {
	if !json.Valid(raw) {
		// Re-parse to surface the decoder's position information.
		var probe any
		err := json.Unmarshal(raw, &probe)
		return nil, domain.WrapE(domain.KindMalformedInput, err, "invalid JSON in config file")
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(Schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, domain.WrapE(domain.KindSchemaViolation, err, "schema validation failed")
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return nil, domain.E(domain.KindSchemaViolation, "schema validation failed: %s", first.String())
	}

	var cfg domain.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, domain.WrapE(domain.KindMalformedInput, err, "cannot decode config file")
	}

	// Belt and braces: the schema already requires these, but a zero value
	// sneaking past it must not reach the fetch stage.
	if cfg.Username == "" {
		return nil, domain.E(domain.KindMissingField, "missing required field %q", "username")
	}
	if len(cfg.Repositories) == 0 {
		return nil, domain.E(domain.KindMissingField, "missing required field %q", "repositories")
	}
	return &cfg, nil
}
