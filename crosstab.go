// Package crosstab provides count and sum pivot tables for any tabular dataset.
//
// Usage:
//
//	import "github.com/spektr-org/crosstab/engine"
//
//	personas, err := engine.Personas(view, "user_id", "personas")
//	relationships, err := engine.Relationships(view, "user_id", "relationships", "count", "title")
//
// The engine reads consumer data through a RecordView (typed structs via
// DomainAdapter, gota DataFrames via NewFrameView, or CSV via helpers) and
// returns dense, zero-filled tables. Source data is never mutated.
//
// Column discovery for unknown datasets is handled by the schema package.
package crosstab
