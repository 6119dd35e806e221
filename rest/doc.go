// Package rest dispatches REST requests through a fixed lifecycle and turns
// HTTP outcomes into semantic callbacks.
//
// A dispatch runs Reset, then Start, enriches headers through a headers.Chain,
// hands the request to a Transport and classifies the resulting Outcome:
//
//	2xx            -> Success(payload)
//	0 / -1         -> silent abort
//	404            -> NotFound()
//	412            -> Rejected(violations)
//	401 / 403      -> publish "checkpoint.auth.required" with the current path
//	anything else  -> publish "system.alert" with the status code
//
// Every failure also runs Error, and Stop always runs exactly once, last.
//
//	h := rest.NewHandler(transport,
//	    rest.WithHeaders(chain),
//	    rest.WithPublisher(bus),
//	    rest.WithLocation(tracker),
//	)
//	h.Dispatch(ctx, &rest.Request{
//	    Method: http.MethodPut,
//	    URL:    "api/entity/catalog-partition",
//	    Payload: entity,
//	    Callbacks: rest.Callbacks{Success: func(p rest.Payload) { ... }},
//	})
package rest
