// Package headers provides the header-enrichment pipeline applied to every
// dispatched request.
//
// A Chain is an ordered, append-only list of Mappers. Before each request the
// chain folds its mappers left-to-right over a copy of the caller's headers,
// each mapper receiving the output of the previous one:
//
//	chain := headers.NewChain()
//	chain.Register(headers.RequestID(""))
//	chain.Register(headers.Default("Accept", "application/json"))
//
//	final := chain.Apply(headers.Headers{"X-Custom": "value"})
//
// Mappers are expected to merge rather than replace: a header set by the
// caller should survive unless a mapper deliberately overwrites it. The chain
// does not enforce this; all mappers in this package follow it.
package headers
