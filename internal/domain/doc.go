// Package domain contains the core domain entities and value objects for msdiff.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (file system, CLI, logging) and
// contains only the types the analysis pipelines exchange.
//
// # Entities
//
//   - [Series]: An ordered (time, value, stderr) sample sequence, one data column
//   - [Table]: A shared time axis with one or more value columns
//   - [Window]: A pair of index positions bounding the diffusive regime
//   - [FitResult]: Slope, slope stderr, R² and point count of a linear fit
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
