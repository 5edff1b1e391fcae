// Package store holds the file-backed persistence used by the transformation
// pipeline: category keyword overrides and the error audit log.
package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Jagbo/zenrent-sub000/internal/categorizer"
	"github.com/Jagbo/zenrent-sub000/internal/logging"
)

// LoadKeywordOverrides reads category keyword overrides from a YAML file. A
// missing path or empty file yields zero-value overrides, so deployments
// without a keyword file run on the built-in sets alone.
func LoadKeywordOverrides(path string, logger logging.Logger) (categorizer.Overrides, error) {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	var overrides categorizer.Overrides
	if path == "" {
		return overrides, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("keyword override file not found, using built-in keywords",
				logging.Field{Key: logging.FieldInputFile, Value: path})
			return overrides, nil
		}
		return overrides, fmt.Errorf("reading keyword overrides %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return categorizer.Overrides{}, fmt.Errorf("parsing keyword overrides %s: %w", path, err)
	}

	logger.Debug("loaded keyword overrides",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(overrides.Categories)})
	return overrides, nil
}
