package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fixora/auditguard/domain/entity"
)

// LoadProductRules returns the Product bounds, overlaying the YAML file at
// path on the defaults. Keys missing from the file keep their default value.
// An empty path returns the defaults.
//
//	name:
//	  min_length: 3
//	  max_length: 50
//	price:
//	  min_value: 1
//	  max_value: 10000000000000
//	quantity:
//	  min_count: 1
//	  max_count: 100000000000
func LoadProductRules(path string) (entity.ProductRules, error) {
	rules := entity.DefaultProductRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("failed to unmarshal rules file: %w", err)
	}
	return rules, nil
}
