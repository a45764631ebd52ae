// Package resolver turns one model invocation into a validated typed object.
//
// Resolution is two-tiered: a schema-constrained generation first, then a
// salvage parse of an unconstrained generation when the provider cannot (or
// will not) honor the schema. Attempts are bounded by a retry budget with a
// fixed delay between rounds. The salvage pipeline is pure and independently
// testable: sanitize, strip code fences, strict parse, balanced-brace scan,
// rationale flattening.
package resolver
