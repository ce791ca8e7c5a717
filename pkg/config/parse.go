package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/replicate/releasegate/pkg/util/files"
)

// Parse reads and parses a config file.
// This only does YAML parsing - no validation or defaults.
func Parse(filename string) (*Config, error) {
	exists, err := files.IsFile(filename)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	if !exists {
		return nil, &ParseError{
			Filename: filename,
			Err:      fmt.Errorf("%s does not exist in %s", filepath.Base(filename), filepath.Dir(filename)),
		}
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}

	return ParseBytes(contents, filename)
}

// ParseBytes parses YAML content into a Config. Unknown keys are rejected.
// The filename is used for error messages only.
func ParseBytes(contents []byte, filename string) (*Config, error) {
	cfg := &Config{filename: filename}

	if len(contents) == 0 {
		return cfg, nil
	}

	if err := yaml.UnmarshalStrict(contents, cfg); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, &SchemaError{Filename: filename, Messages: typeErr.Errors}
		}
		return nil, &ParseError{
			Filename: filename,
			Err:      fmt.Errorf("invalid YAML: %w", err),
		}
	}

	return cfg, nil
}
