package constants

// Viper keys.
const (
	ViperHTTPAddrKey         = "http.addr"
	ViperShutdownTimeoutKey  = "http.shutdown_timeout"
	ViperCORSOriginsKey      = "http.cors_origins"
	ViperRateLimitKey        = "http.rate_limit"
	ViperDBDSNKey            = "db.dsn"
	ViperDBMaxConnsKey       = "db.max_conns"
	ViperDBConnectRetriesKey = "db.connect_retries"
	ViperDBMigrateKey        = "db.migrate"
	ViperSecretKey           = "auth.secret"
	ViperAccessTTLKey        = "auth.access_ttl"
	ViperRefreshTTLKey       = "auth.refresh_ttl"
	ViperLogLevelKey         = "log.level"
	ViperImportTimeoutKey    = "import.timeout"
	ViperImportMaxBodyKey    = "import.max_body_bytes"
	ViperLabelAPIKeyKey      = "label.api_key"
	ViperLabelBaseURLKey     = "label.base_url"
	ViperLabelModelKey       = "label.model"
	ViperLabelTimeoutKey     = "label.timeout"
	ViperLabelMaxImageKey    = "label.max_image_bytes"
)

// Context keys.
const (
	CtxKeyUserID    = "user_id"
	CtxKeyRequestID = "request_id"
)

const (
	HeaderAuthorization = "Authorization"
	AuthScheme          = "Bearer"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
