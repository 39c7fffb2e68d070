// Package domain defines the core business entities for archivo.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentRecord: One indexed document and its inferred location
//   - Classification: The outcome of inferring region and site from a path
//   - ResultSet: An ordered search result that callers may re-sort
//   - SortState: Per-column sort direction owned by the caller
//   - IndexEvent: Progress messages emitted by a background index run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
