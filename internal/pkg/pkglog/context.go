package pkglog

import "context"

type (
	correlationIDKey struct{}
	jobIDKey         struct{}
)

// GetCorrelationID returns the correlation ID stored in ctx, or "" when the
// context never passed through the correlation middleware.
func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(correlationIDKey{}).(string)
	return cid
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}

// GetJobID returns the job being processed under ctx, if any.
func GetJobID(ctx context.Context) string {
	id, _ := ctx.Value(jobIDKey{}).(string)
	return id
}

// SetJobID tags ctx so every record logged under it carries job_id.
func SetJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, jobIDKey{}, jobID)
}

// Detach returns a context derived from parent that keeps the logging values
// of from. Background work started by a request uses it so its logs can be
// joined with the request that queued it.
func Detach(parent, from context.Context) context.Context {
	if cid := GetCorrelationID(from); cid != "" {
		parent = SetCorrelationID(parent, cid)
	}
	if id := GetJobID(from); id != "" {
		parent = SetJobID(parent, id)
	}
	return parent
}
