// Package scoped binds the rest dispatch lifecycle to a shared form State:
// a busy flag plus per-field violations and error classes. Callers no longer
// wire Reset, Start, Stop or Rejected by hand.
//
//	state := scoped.NewState()
//	h := scoped.NewHandler(restHandler)
//	h.Dispatch(ctx, state, &rest.Request{Method: http.MethodPost, URL: "api/users", Payload: form})
//
//	if class, _ := state.ErrorClass("email"); class == scoped.ErrorClass { ... }
package scoped
