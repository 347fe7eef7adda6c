// Package dom provides child-scoped lookups over a parsed HTML tree.
//
// Rapla exports are table-heavy documents where the meaning of a node depends
// on its exact nesting, so all lookups here are deliberately non-recursive:
// they only inspect the direct children of the given node. Composing nested
// lookups is the extractor's job. Absence is reported through ok-booleans and
// nil slices, never through errors.
//
// The package also owns the byte-level entry point: Rapla serves its HTML in
// Windows-1252, so Decode must wrap the raw stream before Parse sees it.
package dom
