// Package ir provides the value model for raw SPARQL trees.
//
// A raw tree is built only from the sealed Value types in this package:
// Null, String, Int, Float, Bool, Array and Object. ir imports nothing
// internal; every other package builds on it.
//
// Key design constraints:
//   - Object iteration is always through SortedKeys (UTF-16 order), so any
//     "first key" rule elsewhere is deterministic
//   - Canonical JSON (MarshalCanonical) is the only serialization used for
//     digests and golden snapshots
package ir
