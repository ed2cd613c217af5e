package constants

// Context keys set by HTTP middleware and consumed by handlers.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUsername  = "username"
	ContextKeyUserRole  = "user_role"
	ContextKeyClientIP  = "client_ip"
	ContextKeyUserAgent = "user_agent"
)

// Environment names used to select migration strategy and gin mode.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)
