// Package jsondoc provides a JSON document whose edits can be rolled back.
//
// Documents are edited with JSON Patch (RFC 6902) or JSON Merge Patch
// (RFC 7386) documents. While a snapshot is open, each edit records the
// document as it was before the edit, which rollback restores byte for
// byte, along with the reverse merge patch for inspection.
//
// Merge patches cannot express members whose value is null, so documents
// are normalized on load and after every edit by dropping null members of
// objects. Nulls inside arrays are kept.
package jsondoc
