package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for shiplog.
// It aggregates all sub-configurations and is populated by merging values
// from an optional JSON file, environment variables, command-line flags,
// and built-in defaults — in that order of precedence (a locally persisted
// JSON override always wins over process-level settings).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: token secrets, the session
	// token parameters, and the break-glass admin password.
	App App `envPrefix:"APP_"`

	// Airtable holds credentials and table/field identifiers for the
	// remote tabular store.
	Airtable Airtable `envPrefix:"AIRTABLE_"`

	// Email holds settings for the transactional-email collaborator.
	Email Email `envPrefix:"EMAIL_"`

	// Server holds network settings for the auth server.
	Server Server `envPrefix:"SERVER_"`

	// Client holds settings used only by the terminal client.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file's values take precedence over environment
	// variables and flags. Populated via the CONFIG environment variable
	// or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values controlling the auth
// handshake.
type App struct {
	// TokenSecret is the HMAC-SHA256 key used to sign one-time-code
	// tokens. Must be kept confidential.
	// Env: APP_TOKEN_SECRET
	TokenSecret string `env:"TOKEN_SECRET"`

	// SessionSignKey signs the JWT session tokens issued at verify time.
	// Env: APP_SESSION_SIGN_KEY
	SessionSignKey string `env:"SESSION_SIGN_KEY"`

	// SessionIssuer is the "iss" claim embedded in session tokens.
	// Env: APP_SESSION_ISSUER
	SessionIssuer string `env:"SESSION_ISSUER"`

	// SessionDuration is how long a session token remains valid.
	// Env: APP_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// AdminPassword, when set, bypasses the one-time-code check entirely
	// if submitted in place of the code. Break-glass support access only;
	// such logins are logged distinctly.
	// Env: APP_ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Version is the semantic version of the running binary, exposed via
	// the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Airtable holds the remote store credentials and the statically declared
// column mapping for the entries table.
type Airtable struct {
	// APIKey is the bearer token for the Airtable REST API.
	// Env: AIRTABLE_API_KEY
	APIKey string `env:"API_KEY"`

	// BaseID identifies the Airtable base.
	// Env: AIRTABLE_BASE_ID
	BaseID string `env:"BASE_ID"`

	// EntriesTable, UsersTable, VesselsTable and TagsTable are table ids
	// (or names) within the base. Only the tables a binary actually uses
	// need to be configured.
	EntriesTable string `env:"ENTRIES_TABLE"`
	UsersTable   string `env:"USERS_TABLE"`
	VesselsTable string `env:"VESSELS_TABLE"`
	TagsTable    string `env:"TAGS_TABLE"`

	// RequestTimeout bounds every outbound Airtable call.
	// Env: AIRTABLE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Fields overrides the entry column names. Unset fields fall back to
	// the defaults declared in the airtable package.
	Fields Fields `envPrefix:"FIELD_"`
}

// Fields names the entry table columns. The mapping is validated at startup;
// a missing required column fails fast instead of silently defaulting.
type Fields struct {
	Vessel   string `env:"VESSEL"`
	Date     string `env:"DATE"`
	Start    string `env:"START"`
	End      string `env:"END"`
	Activity string `env:"ACTIVITY"`
	Tag      string `env:"TAG"`
}

// Email holds settings for the Resend transactional-email API.
type Email struct {
	// ResendAPIKey is the bearer token for api.resend.com.
	// Env: EMAIL_RESEND_API_KEY
	ResendAPIKey string `env:"RESEND_API_KEY"`

	// From is the sender shown on login-code emails,
	// e.g. `Shiplog <onboarding@resend.dev>`.
	// Env: EMAIL_FROM
	From string `env:"FROM"`
}

// Server holds network settings for the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the read/write timeout applied to the listener.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Client holds the terminal client's settings.
type Client struct {
	// AuthAddress is the base URL of the auth server.
	// Env: CLIENT_AUTH_ADDRESS
	AuthAddress string `env:"AUTH_ADDRESS"`

	// DBPath is the SQLite file backing the local cache.
	// Env: CLIENT_DB_PATH
	DBPath string `env:"DB_PATH"`

	// RequestTimeout bounds outbound client requests.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// defaults returns the lowest-precedence configuration layer.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionIssuer:   "shiplog",
			SessionDuration: 12 * time.Hour,
		},
		Airtable: Airtable{
			RequestTimeout: 15 * time.Second,
		},
		Server: Server{
			HTTPAddress:    ":8080",
			RequestTimeout: 30 * time.Second,
		},
		Client: Client{
			AuthAddress:    "http://localhost:8080",
			DBPath:         "shiplog.db",
			RequestTimeout: 15 * time.Second,
		},
	}
}
