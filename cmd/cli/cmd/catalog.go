// Package cmd - catalog command
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dimensional/core/catalog"
	"dimensional/internal/errors"
)

var catalogFormat string

// catalogCmd lists the catalog
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List prefixes, roots and conversions",
	Long: `List the catalog in deterministic order: prefixes by base and exponent,
roots by dimension and name, conversions in file order.

Examples:
  dimensional catalog
  dimensional catalog --format json
  dimensional catalog --catalog extra.hcl --format yaml`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogFormat, "format", "f", "table", "output format (table, json, yaml)")
	rootCmd.AddCommand(catalogCmd)
}

type prefixListing struct {
	Short string `json:"short" yaml:"short"`
	Long  string `json:"long" yaml:"long"`
	Base  int    `json:"base" yaml:"base"`
	Exp   int    `json:"exp" yaml:"exp"`
	Scale string `json:"scale" yaml:"scale"`
}

type rootListing struct {
	Short     string `json:"short" yaml:"short"`
	Long      string `json:"long" yaml:"long"`
	Dimension string `json:"dimension" yaml:"dimension"`
	Scale     string `json:"scale" yaml:"scale"`
	Affine    bool   `json:"affine,omitempty" yaml:"affine,omitempty"`
}

type conversionListing struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Scale  string `json:"scale" yaml:"scale"`
	Offset string `json:"offset" yaml:"offset"`
}

type catalogListing struct {
	Fingerprint string              `json:"fingerprint" yaml:"fingerprint"`
	Prefixes    []prefixListing     `json:"prefixes" yaml:"prefixes"`
	Roots       []rootListing       `json:"roots" yaml:"roots"`
	Conversions []conversionListing `json:"conversions" yaml:"conversions"`
}

func listCatalog(c *catalog.Catalog) catalogListing {
	listing := catalogListing{Fingerprint: c.Fingerprint().Hex()}
	for _, p := range c.Prefixes() {
		listing.Prefixes = append(listing.Prefixes, prefixListing{
			Short: p.Short,
			Long:  p.Long,
			Base:  p.Base,
			Exp:   p.Exp,
			Scale: p.Scale().String(),
		})
	}
	for _, r := range c.Roots() {
		listing.Roots = append(listing.Roots, rootListing{
			Short:     r.Short,
			Long:      r.Long,
			Dimension: r.Dimension.String(),
			Scale:     r.Factor().String(),
			Affine:    r.Affine,
		})
	}
	for _, conv := range c.Conversions() {
		listing.Conversions = append(listing.Conversions, conversionListing{
			From:   conv.From,
			To:     conv.To,
			Scale:  conv.Scale.String(),
			Offset: conv.Offset.String(),
		})
	}
	return listing
}

func runCatalog(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	listing := listCatalog(env.catalog)
	out := cmd.OutOrStdout()

	switch catalogFormat {
	case "table":
		return writeCatalogTable(out, listing)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Newf(errors.TypeInput, "unknown format %q (want table, json or yaml)", catalogFormat)
	}
}

func writeCatalogTable(out io.Writer, listing catalogListing) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "CATALOG\t%s\n\n", listing.Fingerprint)
	fmt.Fprintln(w, "PREFIX\tNAME\tSCALE")
	for _, p := range listing.Prefixes {
		fmt.Fprintf(w, "%s\t%s\t%d^%d\n", p.Short, p.Long, p.Base, p.Exp)
	}

	fmt.Fprintln(w, "\nROOT\tNAME\tDIMENSION\tSCALE")
	for _, r := range listing.Roots {
		scale := r.Scale
		if r.Affine {
			scale += " (offset)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Short, r.Long, r.Dimension, scale)
	}

	fmt.Fprintln(w, "\nFROM\tTO\tSCALE\tOFFSET")
	for _, c := range listing.Conversions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.From, c.To, c.Scale, c.Offset)
	}
	return w.Flush()
}
