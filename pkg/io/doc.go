// Package io handles serialization of resolved dependency paths.
//
// The resolve pipeline produces an ordered list of directory paths; this
// package writes that list as JSON for consumption by packaging steps and
// reads it back for round-trip processing.
package io
