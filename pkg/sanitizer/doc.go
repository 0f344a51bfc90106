// Package sanitizer normalizes hotel input before validation and storage.
//
// All functions are idempotent. Invalid input is handled by returning empty
// strings or empty slices rather than errors; validation decides what is
// acceptable afterwards.
//
// Normalization includes:
//   - Free text: collapse whitespace runs, trim leading/trailing spaces
//   - Image URLs: trim, lowercase scheme and host, keep path and query as-is
//   - Amenities: free-text rules, then drop empties and case-insensitive duplicates
package sanitizer
