package fabric

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidModelName rejects empty or blank model names.
	ErrInvalidModelName = errors.New("fabricator: model name is required")
	// ErrInvalidAttributes rejects malformed templates and override maps.
	ErrInvalidAttributes = errors.New("fabricator: invalid attributes")
	// ErrInvalidAttributeValue rejects template values that are neither
	// string, bool, nor producer spec.
	ErrInvalidAttributeValue = errors.New("fabricator: invalid attribute value")
	// ErrInvalidCount rejects negative batch counts.
	ErrInvalidCount = errors.New("fabricator: count must be a non-negative integer")
)

func validateModelName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidModelName
	}
	return nil
}

// validateTemplate checks every entry eagerly so fabrication never validates
// mid-resolution. A nil template is a valid empty template.
func validateTemplate(template Template) error {
	seen := make(map[string]struct{}, len(template))
	for _, entry := range template {
		if strings.TrimSpace(entry.Name) == "" {
			return fmt.Errorf("%w: entry with empty name", ErrInvalidAttributes)
		}
		if _, dup := seen[entry.Name]; dup {
			return fmt.Errorf("%w: duplicate attribute %q", ErrInvalidAttributes, entry.Name)
		}
		seen[entry.Name] = struct{}{}

		if err := validateValue(entry.Name, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(name string, value any) error {
	switch v := value.(type) {
	case string, bool:
		return nil
	case *Spec:
		return validateSpec(name, v)
	default:
		return fmt.Errorf("%w: attribute %q holds %T", ErrInvalidAttributeValue, name, value)
	}
}

func validateSpec(name string, spec *Spec) error {
	if spec == nil {
		return fmt.Errorf("%w: attribute %q holds a nil spec", ErrInvalidAttributeValue, name)
	}
	switch spec.kind {
	case KindSequence:
		if spec.sequence == nil {
			return fmt.Errorf("%w: attribute %q sequence function is nil", ErrInvalidAttributeValue, name)
		}
	case KindDerived:
		if spec.derived == nil {
			return fmt.Errorf("%w: attribute %q derived function is nil", ErrInvalidAttributeValue, name)
		}
	case KindAssociation:
		if spec.child == nil {
			return fmt.Errorf("%w: attribute %q associates a nil fabricator", ErrInvalidAttributeValue, name)
		}
	default:
		return fmt.Errorf("%w: attribute %q holds unknown kind %q", ErrInvalidAttributeValue, name, spec.kind)
	}
	return nil
}
