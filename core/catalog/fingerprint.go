// Package catalog - Catalog fingerprint
package catalog

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"dimensional/core/dimension"
)

// Fingerprint identifies catalog contents
type Fingerprint [32]byte

// Hex returns the full hash
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f[:])
}

// String returns the first 16 hex digits
func (f Fingerprint) String() string {
	return f.Hex()[:16]
}

// Fingerprint hashes every prefix, root and conversion. Entries are put in
// a total order first, so two catalogs with the same entries have the same
// fingerprint whatever the order of their source files.
func (c *Catalog) Fingerprint() Fingerprint {
	h := sha256.New()
	field := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	prefixes := c.Prefixes()
	slices.SortStableFunc(prefixes, func(a, b *dimension.Prefix) int {
		return cmp.Or(cmp.Compare(a.Base, b.Base), cmp.Compare(a.Exp, b.Exp), cmp.Compare(a.Long, b.Long))
	})
	conversions := c.Conversions()
	slices.SortStableFunc(conversions, func(a, b Conversion) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})

	for _, p := range prefixes {
		field("prefix")
		field(p.Short)
		field(p.Long)
		field(p.Scale().String())
	}
	for _, r := range c.Roots() {
		field("root")
		field(r.Short)
		field(r.Long)
		field(r.Dimension.String())
		field(r.Factor().String())
		if r.Affine {
			field("affine")
		}
	}
	for _, conv := range conversions {
		field("conversion")
		field(conv.From)
		field(conv.To)
		field(conv.Scale.String())
		field(conv.Offset.String())
	}

	var f Fingerprint
	copy(f[:], h.Sum(nil))
	return f
}
