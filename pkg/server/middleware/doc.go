// Package middleware provides the HTTP middleware keygate wraps around
// every route.
//
// The server installs them outermost first:
//
//	handler := middleware.Chain(mux,
//	    middleware.Recovery(logger),
//	    middleware.RequestID,
//	    middleware.Logging(logger),
//	)
//
// Recovery turns panics into a 500 {"detail": ...} response. RequestID
// keeps a client-supplied X-Request-ID or generates a UUID and puts it in
// the request context, where the logging handler picks it up. Logging
// writes one structured line per request.
package middleware
