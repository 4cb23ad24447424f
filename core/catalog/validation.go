// Package catalog - Catalog validation
// Ensures catalog integrity before the registry is used.
package catalog

import (
	"fmt"

	"go.uber.org/zap"

	"dimensional/core/dimension"
	"dimensional/internal/errors"
	"dimensional/internal/logging"
)

// RootRule is a validation rule for a root
type RootRule func(*dimension.Root) error

// PrefixRule is a validation rule for a prefix
type PrefixRule func(*dimension.Prefix) error

// DefaultRootRules returns the standard root rules
func DefaultRootRules() []RootRule {
	return []RootRule{
		validateRootNames,
		validateRootDimension,
		validateRootScale,
	}
}

// DefaultPrefixRules returns the standard prefix rules
func DefaultPrefixRules() []PrefixRule {
	return []PrefixRule{
		validatePrefixNames,
		validatePrefixBase,
	}
}

// Validate checks every entry against the default rules and every
// conversion against the registry
func (c *Catalog) Validate() []error {
	var errs []error

	for _, p := range c.prefixList {
		for _, rule := range DefaultPrefixRules() {
			if err := rule(p); err != nil {
				errs = append(errs, fmt.Errorf("prefix %s: %w", p.Long, err))
			}
		}
	}

	for _, r := range c.rootList {
		for _, rule := range DefaultRootRules() {
			if err := rule(r); err != nil {
				errs = append(errs, fmt.Errorf("root %s: %w", r.Long, err))
			}
		}
	}

	for _, conv := range c.conversions {
		if conv.Scale.IsZero() {
			errs = append(errs, fmt.Errorf("conversion %s -> %s: zero scale", conv.From, conv.To))
		}
		for _, name := range []string{conv.From, conv.To} {
			if _, err := c.Lookup(name); err != nil {
				errs = append(errs, fmt.Errorf("conversion %s -> %s: %w", conv.From, conv.To, err))
			}
		}
	}

	return errs
}

// validateRootNames requires both names
func validateRootNames(r *dimension.Root) error {
	if r.Short == "" || r.Long == "" {
		return errors.New(errors.TypeInput, "short and long names are required")
	}
	return nil
}

// validateRootDimension requires one of the seven base dimensions
func validateRootDimension(r *dimension.Root) error {
	if !r.Dimension.Valid() {
		return errors.Newf(errors.TypeInput, "invalid dimension %d", r.Dimension)
	}
	return nil
}

// validateRootScale requires a positive scale when one is given
func validateRootScale(r *dimension.Root) error {
	if r.Scale.IsNegative() {
		return errors.Newf(errors.TypeInput, "scale %s must be positive", r.Scale)
	}
	return nil
}

// validatePrefixNames requires both names
func validatePrefixNames(p *dimension.Prefix) error {
	if p.Short == "" || p.Long == "" {
		return errors.New(errors.TypeInput, "short and long names are required")
	}
	return nil
}

// validatePrefixBase rejects bases that cannot scale
func validatePrefixBase(p *dimension.Prefix) error {
	if p.Base < 2 {
		return errors.Newf(errors.TypeInput, "base %d must be at least 2", p.Base)
	}
	if p.Exp == 0 {
		return errors.New(errors.TypeInput, "exponent 0 is the identity prefix")
	}
	return nil
}

// MustValidate panics if validation fails
func (c *Catalog) MustValidate() {
	errs := c.Validate()
	if len(errs) > 0 {
		for _, err := range errs {
			logging.Error("catalog validation error", zap.Error(err))
		}
		panic(fmt.Sprintf("catalog has %d validation errors", len(errs)))
	}
}
