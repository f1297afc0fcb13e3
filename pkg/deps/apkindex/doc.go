// Package apkindex parses APKINDEX package-index files into a static
// dependency source.
//
// APKINDEX is the line-oriented record format Alpine mirrors publish: each
// package record is a run of "key:value" lines terminated by a blank line.
// apkgraph only cares about two keys - "P:" (package name) and "D:"
// (whitespace-separated dependency specifiers) - and ignores the rest, so a
// stripped test fixture and a real mirror index parse identically.
package apkindex
