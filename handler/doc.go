// Package handler adapts typed request handlers to net/http and owns the
// wire format of every response.
//
// A HandlerFunc receives a Context and a request value populated by binders
// and returns a Response. Wrap turns it into an http.HandlerFunc:
//
//	h := handler.HandlerFunc[handler.Context, getWordRequest](
//		func(ctx handler.Context, req getWordRequest) handler.Response {
//			w, err := words.Get(ctx, req.ID)
//			if err != nil {
//				return handler.Fail(err)
//			}
//			return handler.Success(w)
//		},
//	)
//	r.Get("/{id}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, getWordRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, getWordRequest](errs.Handle),
//	))
//
// Every body written by this package is an Envelope:
//
//	{"success": true, "code": 200, "message": "...", "data": ..., "timestamp": "2024-01-01T00:00:00.000Z"}
//
// success is derived from code and is true exactly when code < 400.
//
// Failures are returned with Fail and rendered by the ErrorTranslator, which
// maps validation errors, typed apperr failures, storage constraint
// violations and everything else onto an Envelope and status code.
package handler
