package cmd

import "github.com/samwightt/gql2openapi/pkg/convert"

type (
	ValidationError = convert.Fault
	Location        = convert.Location
)

type ValidationResult struct {
	Valid  bool              `json:"valid" yaml:"valid"`
	Kind   string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Errors []ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type ParamInfo struct {
	Path        string   `json:"path" yaml:"path"`
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Required    bool     `json:"required" yaml:"required"`
	Enum        []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

type PropertyInfo struct {
	Path        string   `json:"path" yaml:"path"`
	Property    string   `json:"property" yaml:"property"`
	Type        string   `json:"type" yaml:"type"`
	Nullable    bool     `json:"nullable" yaml:"nullable"`
	Enum        []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}
