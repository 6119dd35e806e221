// Package restclient is a thin verb client over a rest.Transport. It joins a
// base URI with request paths and hands the raw outcome to success and error
// handlers, without the dispatch lifecycle of package rest.
//
//	c := restclient.New(transport, restclient.WithBaseURI("api"))
//	c.Put(ctx, "items/1", item, onSaved, onFailed)
package restclient
