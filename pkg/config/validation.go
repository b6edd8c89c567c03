package config

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/marmos91/filebridge/pkg/entry/roots"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// This function uses go-playground/validator for declarative validation
// via struct tags, with additional custom validation for complex rules
// that cannot be expressed in tags.
//
// Note: Log level normalization is handled in ApplyDefaults, not here.
//
// Returns an error describing validation failures.
func Validate(cfg *Config) error {
	// Run struct tag validation
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	// Custom validation rules that can't be expressed in tags
	if err := validateCustomRules(cfg); err != nil {
		return err
	}

	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// Root overrides must name known storage classes and use absolute paths
	for class, path := range cfg.Roots {
		if !roots.Known(class) {
			return fmt.Errorf("roots: unknown storage class %q", class)
		}
		if !filepath.IsAbs(path) {
			return fmt.Errorf("roots[%s]: path %q is not absolute", class, path)
		}
	}

	// An enabled journal needs somewhere to put its database
	if enabled, _ := cfg.Engine.Journal["enabled"].(bool); enabled {
		path, _ := cfg.Engine.Journal["path"].(string)
		if path == "" {
			return fmt.Errorf("engine.journal: enabled is true but path is empty")
		}
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		// Return the first validation error with context
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
