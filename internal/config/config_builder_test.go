package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_TOKEN_SECRET", "env-secret")
	t.Setenv("APP_SESSION_DURATION", "6h")
	t.Setenv("AIRTABLE_API_KEY", "keyENV")
	t.Setenv("AIRTABLE_FIELD_ACTIVITY", "What Happened")
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("CLIENT_DB_PATH", "/tmp/cache.db")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "env-secret", cfg.App.TokenSecret)
	assert.Equal(t, 6*time.Hour, cfg.App.SessionDuration)
	assert.Equal(t, "keyENV", cfg.Airtable.APIKey)
	assert.Equal(t, "What Happened", cfg.Airtable.Fields.Activity)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddress)
	assert.Equal(t, "/tmp/cache.db", cfg.Client.DBPath)
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("APP_SESSION_DURATION", "not-a-duration")

	var cfg StructuredConfig
	require.Error(t, parseEnv(&cfg))
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"app": {"token_secret": "json-secret", "session_duration": "2h"},
		"airtable": {"api_key": "keyJSON", "base_id": "appX", "fields": {"activity": "Description"}},
		"server": {"http_address": ":7070"},
		"client": {"db_path": "local.db", "request_timeout": "5s"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-secret", cfg.App.TokenSecret)
	assert.Equal(t, 2*time.Hour, cfg.App.SessionDuration)
	assert.Equal(t, "keyJSON", cfg.Airtable.APIKey)
	assert.Equal(t, "Description", cfg.Airtable.Fields.Activity)
	assert.Equal(t, ":7070", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Client.RequestTimeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestParseJSON_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	_, err := parseJSON(path)
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, d.UnmarshalJSON([]byte(`"90s"`)))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, time.Duration(d))

	require.Error(t, d.UnmarshalJSON([]byte(`"ninety seconds"`)))
}

func TestConfigBuilder_EarlierLayersWin(t *testing.T) {
	builder := newConfigBuilder()
	builder.configs = append(builder.configs,
		&StructuredConfig{App: App{TokenSecret: "override"}},
		&StructuredConfig{App: App{TokenSecret: "fallback", SessionIssuer: "shiplog"}},
	)

	cfg, err := builder.build()
	require.NoError(t, err)

	assert.Equal(t, "override", cfg.App.TokenSecret, "the first layer holding a value wins")
	assert.Equal(t, "shiplog", cfg.App.SessionIssuer, "unset fields fall through to later layers")
}

func TestConfigBuilder_DefaultsLayer(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "shiplog", cfg.App.SessionIssuer)
	assert.Equal(t, 12*time.Hour, cfg.App.SessionDuration)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "http://localhost:8080", cfg.Client.AuthAddress)
}

func TestConfigBuilder_JSONOverridesOtherLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"app": {"token_secret": "from-json"}}`), 0o600))

	builder := newConfigBuilder()
	builder.configs = append(builder.configs,
		&StructuredConfig{App: App{TokenSecret: "from-env"}, JSONFilePath: path},
	)

	cfg, err := builder.withJSON().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "from-json", cfg.App.TokenSecret, "a persisted override file beats process settings")
}
