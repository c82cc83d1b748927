package entities

// TenantRef identifies the tenant/environment pair an envelope belongs to.
type TenantRef struct {
	Tenant string `json:"tenant"`
	Env    string `json:"env"`
}

// Envelope is the channel message carried by an invocation.
type Envelope struct {
	ID            string            `json:"id"`
	Tenant        TenantRef         `json:"tenant"`
	Channel       string            `json:"channel"`
	SessionID     string            `json:"session_id"`
	ReplyScope    string            `json:"reply_scope,omitempty"`
	From          string            `json:"from,omitempty"`
	To            []string          `json:"to,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Text          string            `json:"text,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// HasScope reports whether the envelope carries the full tenant, environment
// and session identity required before any tenant-scoped data is processed.
func (e *Envelope) HasScope() bool {
	return e.Tenant.Tenant != "" && e.Tenant.Env != "" && e.SessionID != ""
}
