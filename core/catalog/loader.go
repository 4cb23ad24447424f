// Package catalog - HCL catalog loader
package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"dimensional/core/dimension"
	"dimensional/internal/errors"
	"dimensional/internal/logging"
)

type fileSpec struct {
	Prefixes    []prefixSpec     `hcl:"prefix,block"`
	Roots       []rootSpec       `hcl:"root,block"`
	Conversions []conversionSpec `hcl:"conversion,block"`
}

type prefixSpec struct {
	Long    string   `hcl:"long,label"`
	Short   string   `hcl:"short"`
	Aliases []string `hcl:"aliases,optional"`
	Base    int      `hcl:"base"`
	Exp     int      `hcl:"exp"`
}

type rootSpec struct {
	Long      string    `hcl:"long,label"`
	Short     string    `hcl:"short"`
	Aliases   []string  `hcl:"aliases,optional"`
	Dimension string    `hcl:"dimension"`
	Scale     cty.Value `hcl:"scale,optional"`
	Affine    bool      `hcl:"affine,optional"`
}

type conversionSpec struct {
	From   string    `hcl:"from,label"`
	To     string    `hcl:"to,label"`
	Scale  cty.Value `hcl:"scale,optional"`
	Offset cty.Value `hcl:"offset,optional"`
}

// Load parses an HCL catalog into a new Catalog
func Load(src []byte, filename string) (*Catalog, error) {
	c := New()
	if err := c.Merge(src, filename); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFiles returns the built-in catalog merged with the given files
func LoadFiles(paths ...string) (*Catalog, error) {
	c, err := Load(builtin, BuiltinFilename)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "read catalog %s", path)
		}
		if err := c.Merge(src, path); err != nil {
			return nil, err
		}
	}

	if errs := c.Validate(); len(errs) > 0 {
		return nil, errors.Wrapf(errors.TypeConfig, joinErrors(errs), "catalog has %d validation errors", len(errs))
	}
	return c, nil
}

// Merge parses src and adds its entries to c
func (c *Catalog) Merge(src []byte, filename string) error {
	log := logging.Named("catalog")

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return diagError("parse", filename, diags)
	}

	var spec fileSpec
	if diags := gohcl.DecodeBody(file.Body, nil, &spec); diags.HasErrors() {
		return diagError("decode", filename, diags)
	}

	for _, p := range spec.Prefixes {
		prefix := &dimension.Prefix{Short: p.Short, Long: p.Long, Base: p.Base, Exp: p.Exp}
		if err := c.AddPrefix(prefix, p.Aliases...); err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "%s: prefix %q", filename, p.Long)
		}
	}

	for _, r := range spec.Roots {
		root, err := r.build()
		if err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "%s: root %q", filename, r.Long)
		}
		if err := c.AddRoot(root, r.Aliases...); err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "%s: root %q", filename, r.Long)
		}
	}

	for _, conv := range spec.Conversions {
		scale, err := decimalValue(conv.Scale, decimal.NewFromInt(1))
		if err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "%s: conversion %s -> %s scale", filename, conv.From, conv.To)
		}
		offset, err := decimalValue(conv.Offset, decimal.Zero)
		if err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "%s: conversion %s -> %s offset", filename, conv.From, conv.To)
		}
		c.AddConversion(Conversion{From: conv.From, To: conv.To, Scale: scale, Offset: offset})
	}

	log.Debug("merged catalog",
		zap.String("file", filename),
		zap.Int("prefixes", len(spec.Prefixes)),
		zap.Int("roots", len(spec.Roots)),
		zap.Int("conversions", len(spec.Conversions)))
	return nil
}

func (r rootSpec) build() (*dimension.Root, error) {
	dim, err := dimension.ParseBaseDimension(r.Dimension)
	if err != nil {
		return nil, err
	}
	scale, err := decimalValue(r.Scale, decimal.Zero)
	if err != nil {
		return nil, err
	}
	// an omitted scale stays zero, which Root.Factor reads as 1
	if !r.Scale.IsNull() && !scale.IsPositive() {
		return nil, errors.Newf(errors.TypeInput, "scale %s must be positive", scale)
	}
	return &dimension.Root{
		Short:     r.Short,
		Long:      r.Long,
		Dimension: dim,
		Scale:     scale,
		Affine:    r.Affine,
	}, nil
}

// decimalValue reads a number, or a string holding a decimal or a fraction
// "n/d". A missing attribute yields def.
func decimalValue(v cty.Value, def decimal.Decimal) (decimal.Decimal, error) {
	if v.IsNull() {
		return def, nil
	}
	if !v.IsKnown() {
		return decimal.Zero, errors.New(errors.TypeParsing, "value is not known")
	}

	switch ty := v.Type(); {
	case ty.Equals(cty.Number):
		return decimal.NewFromString(v.AsBigFloat().Text('f', -1))
	case ty.Equals(cty.String):
		return ParseRatio(v.AsString())
	default:
		return decimal.Zero, errors.Newf(errors.TypeParsing, "expected number or string, got %s", ty.FriendlyName())
	}
}

// ParseRatio parses "0.3048", "5/9" or "-160/9"
func ParseRatio(s string) (decimal.Decimal, error) {
	numStr, denStr, isFrac := strings.Cut(strings.TrimSpace(s), "/")
	num, err := decimal.NewFromString(strings.TrimSpace(numStr))
	if err != nil {
		return decimal.Zero, errors.Parsing(fmt.Sprintf("invalid number %q", s), err)
	}
	if !isFrac {
		return num, nil
	}
	den, err := decimal.NewFromString(strings.TrimSpace(denStr))
	if err != nil {
		return decimal.Zero, errors.Parsing(fmt.Sprintf("invalid number %q", s), err)
	}
	if den.IsZero() {
		return decimal.Zero, errors.Newf(errors.TypeParsing, "invalid number %q: zero denominator", s)
	}
	return num.Div(den), nil
}

func joinErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return errors.New(errors.TypeInput, strings.Join(msgs, "; "))
}

// diagError keeps the first error diagnostic's position in the message
func diagError(action, filename string, diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		return errors.Parsing(fmt.Sprintf("%s %s:%d", action, filename, line), diags).
			WithContext("summary", diag.Summary)
	}
	return errors.Parsing(fmt.Sprintf("%s %s", action, filename), diags)
}
