// Package normalize canonicalizes raw stored item records.
//
// Item records accumulated schema drift across the application's
// history: the category lives under "type" or "category", the state
// under "status" or "kind", the image URL under three spellings, and
// timestamps appear in four distinct shapes. This package is the only
// place that drift is allowed to exist; business logic sees the
// canonical lifecycle.Item and never a raw field name.
//
// Normalization is total. Malformed documents produce defaulted fields
// and are otherwise absorbed silently; the normalizer must never be
// the reason a caller fails.
package normalize
