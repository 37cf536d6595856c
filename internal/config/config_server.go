package config

import (
	"fmt"
	"time"
)

// ServerConfig is the auth server's view of the merged configuration.
type ServerConfig struct {
	// App contains token secrets and session parameters.
	App App
	// Airtable contains the user-directory store settings.
	Airtable Airtable
	// Email contains the transactional-email settings.
	Email Email
	// Server contains the listen address and timeouts.
	Server Server
}

// GetServerConfig builds and validates the server-specific config view from
// the merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:      cfg.App,
		Airtable: cfg.Airtable,
		Email:    cfg.Email,
		Server:   cfg.Server,
	}

	return serverCfg, serverCfg.validate()
}

func (c *ServerConfig) validate() error {
	switch {
	case c.Airtable.APIKey == "":
		return fmt.Errorf("%w: airtable api key", ErrMissingRequiredSetting)
	case c.Airtable.BaseID == "":
		return fmt.Errorf("%w: airtable base id", ErrMissingRequiredSetting)
	case c.Airtable.UsersTable == "":
		return fmt.Errorf("%w: airtable users table", ErrMissingRequiredSetting)
	case c.App.TokenSecret == "":
		return fmt.Errorf("%w: token secret", ErrMissingRequiredSetting)
	case c.App.SessionSignKey == "":
		return fmt.Errorf("%w: session sign key", ErrMissingRequiredSetting)
	case c.Email.ResendAPIKey == "":
		return fmt.Errorf("%w: resend api key", ErrMissingRequiredSetting)
	case c.Email.From == "":
		return fmt.Errorf("%w: email sender", ErrMissingRequiredSetting)
	case c.App.SessionDuration <= 0:
		return fmt.Errorf("%w: session duration", ErrMissingRequiredSetting)
	}

	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 30 * time.Second
	}

	return nil
}
