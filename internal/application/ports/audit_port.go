package ports

import "context"

type clientIPKey struct{}

// WithClientIP stores the caller address in ctx so audit entries can carry it.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the address stored by WithClientIP, or "".
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// AuditEntry a state-changing action to record.
type AuditEntry struct {
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Details    map[string]any
}

// Auditor records audit entries. Record never fails the caller: errors are logged by the implementation.
type Auditor interface {
	Record(ctx context.Context, e AuditEntry)
}
