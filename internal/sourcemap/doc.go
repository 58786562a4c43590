// Package sourcemap builds version 3 source maps for a single original source.
//
// The package has three layers:
//   - Locator converts byte offsets in the original text into zero-based line/column positions.
//   - Builder walks generated output piece by piece (inserted text, edited content, unedited original ranges) and records raw segments at the configured
//     resolution (see Hires).
//   - DecodedMap and SourceMap are the two output shapes. DecodedMap holds absolute segments; SourceMap holds the VLQ-encoded "mappings" string and
//     marshals to the standard JSON schema.
//
// Lines are zero-based. Columns are byte columns into their line; high-resolution modes step by rune, so a segment never points into a UTF-8 sequence.
package sourcemap
