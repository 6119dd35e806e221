// Package testutil provides fakes and stub backends for testing code built
// on restkit.
//
// Transport, Publisher and NewLocation stand in for the collaborators of
// rest.Handler:
//
//	transport := testutil.NewTransport(rest.Success(201, rest.Payload(`"payload"`)))
//	bus := testutil.NewPublisher()
//	h := rest.NewHandler(transport, rest.WithPublisher(bus))
//
// Backend is a gin-based stub REST server implementing TestComponent, so it
// can be started and torn down with the helpers in this package:
//
//	backend := testutil.NewBackend()
//	testutil.T(t).Setup(backend)
//	backend.Respond(http.MethodGet, "/api/items", 200, `[]`)
package testutil
