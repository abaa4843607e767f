// Package validator provides a declarative, composable validation engine for
// loosely typed request models such as decoded JSON bodies.
//
// A Schema maps dot-delimited field paths to ordered lists of Rule values. The
// Validator evaluates every field of a schema concurrently, runs the rules of a
// single field strictly in order and stops that field at its first failure.
// All failures of one call are aggregated into a ValidationErrors value which
// satisfies the error interface.
//
// # Architecture
//
// Each source file groups a family of rules (`presence_rules.go`,
// `string_rules.go`, `numeric_rules.go`, `relation_rules.go`, etc.). Rules are
// plain values bound to their options; they hold no state between calls and
// can be shared across requests and goroutines.
//
// Core building blocks:
//   - Rule             – evaluates one field path against a model and a DataContext
//   - Schema, RuleSet  – immutable builders for ordered rule lists per field
//   - Validator        – the orchestrator that fans out fields and aggregates failures
//   - DataContext      – named reference records for relational rules, eager or lazy
//   - Stage            – one pass of a staged validation run
//
// # Staged validation
//
// Rules that depend on stored state (Exists, Unique, Custom predicates that
// compare against fetched records) never perform I/O themselves. The calling
// use-case first validates the request shape with a Pure stage, then fetches
// whatever the relational rules need and validates again with that data:
//
//	err := v.Staged(ctx, model,
//	    validator.Pure("shape", validator.NewSchema().
//	        Field("email", validator.Rules().Required().IsString().Regex(validator.PatternEmail)),
//	    ),
//	    validator.WithData("relations", validator.NewSchema().
//	        Field("email", validator.Rules().Unique("customersByEmail", []validator.Prop{validator.Match("email", "email")})),
//	        validator.DataContext{
//	            "customersByEmail": validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
//	                return repo.FindBy(ctx, "email", model["email"])
//	            }),
//	        },
//	    ),
//	)
//
// A later stage is prepared only after every earlier stage passed, so a
// malformed request never reaches the repository.
//
// # Error Handling
//
// Rule-reported failures are *ValidationError values aggregated into
// ValidationErrors; both match ErrValidationFailed with errors.Is. Any other
// error returned by a rule (a failing lookup, a predicate error) is a fault:
// it aborts the whole call and is returned unchanged.
//
// # Concurrency
//
// Fields run in their own goroutines. Each field writes into its own result
// slot, so the aggregated errors are reported in schema order regardless of
// scheduling. The model and the DataContext are only read.
package validator
