// Package audit records security relevant actions such as logins and
// logouts.
//
// A Logger fills request scoped fields (request id, client IP, user agent)
// from context through configurable extractors, applies per event options
// and hands the event to a Storage. PostgresStorage writes to the
// audit_events table; SlogStorage writes structured log records and serves
// as a fallback when no database is configured.
//
//	auditLog := audit.NewLogger(audit.NewPostgresStorage(pool),
//		audit.WithRequestIDExtractor(requestid.FromContext),
//		audit.WithIPExtractor(clientip.FromContext),
//	)
//	_ = auditLog.Log(ctx, "auth.login", audit.WithUserID("42"))
package audit
