package constants

// Application Information
const (
	AppName    = "Contacts Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache key prefixes. Session entries are keyed "user:<email>".
const (
	CacheKeyUserPrefix = "user:"
)

// Token scopes
const (
	ScopeAccessToken  = "access_token"
	ScopeRefreshToken = "refresh_token"
)

// Gin context key under which the auth middleware stores the resolved user.
const (
	CtxKeyCurrentUser = "current_user"
)
