// Package sanitizer normalizes free-text input (lesson names, course labels,
// classroom codes) before validation and persistence, so that lookups and
// duplicate checks are not defeated by whitespace or casing noise.
package sanitizer
