// Package schema declares the typed results each interview agent produces and
// the JSON Schema definitions the resolver hands to model providers. Every
// result type carries a `thinking` rationale field the model fills with its
// reasoning; the rationale ends up in turn-internal notes, never in any
// user-visible message.
package schema
