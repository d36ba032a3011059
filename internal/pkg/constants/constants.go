package constants

// viper keys
const (
	ViperKeyAddr             = "addr"
	ViperKeyPostgresHost     = "postgres_host"
	ViperKeyPostgresPort     = "postgres_port"
	ViperKeyPostgresDB       = "postgres_db"
	ViperKeyPostgresUser     = "postgres_user"
	ViperKeyPostgresPassword = "postgres_password"
	ViperSecretKey           = "secret_key"
)

const (
	CookieKeySecretToken = "secret_token"

	CtxKeyRequestID = "request_id"
)
