package policy

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Decode builds a Policy from a generic map, as produced by YAML or JSON
// decoders. Unknown keys are rejected so typos do not silently widen a policy.
func Decode(raw map[string]any) (Policy, error) {
	var p Policy
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Policy{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadYAML decodes a policy document. JSON documents are accepted as well.
// Documents are checked against the policy schema before decoding, so they
// are typed strictly; Decode alone accepts weakly typed maps.
func LoadYAML(data []byte) (Policy, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	if raw == nil {
		return Policy{}, &InvalidPolicyError{Problems: []string{"policy document is empty"}}
	}
	if err := ValidateDocument(raw); err != nil {
		return Policy{}, err
	}
	return Decode(raw)
}

// LoadFile reads and decodes a policy file.
func LoadFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy %s: %w", path, err)
	}
	return LoadYAML(data)
}

// Validate reports every structural problem with p.
func (p Policy) Validate() error {
	var problems []string

	if p.MaxFileChanges < 0 {
		problems = append(problems, fmt.Sprintf("maxFileChanges must be non-negative, got %d", p.MaxFileChanges))
	}
	for _, ext := range p.AllowedFileTypes {
		if ext == "" {
			problems = append(problems, "allowedFileTypes contains an empty extension")
			break
		}
	}
	for _, f := range p.RestrictedFiles {
		if f == "" {
			problems = append(problems, "restrictedFiles contains an empty name")
			break
		}
	}

	if len(problems) > 0 {
		return &InvalidPolicyError{Problems: problems}
	}
	return nil
}

// Default is the policy the console offered out of the box.
func Default() Policy {
	return Policy{
		AllowedFolders:     []string{"src"},
		RestrictedFiles:    []string{".env"},
		AllowedFileTypes:   []string{".ts", ".tsx"},
		MaxFileChanges:     5,
		RestrictedCommands: []string{"delete"},
	}
}
