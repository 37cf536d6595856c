package config

import (
	"fmt"
)

// ClientConfig is the terminal client's view of the merged configuration.
type ClientConfig struct {
	// Airtable contains the remote entry store settings.
	Airtable Airtable
	// Client contains the auth server address, local cache path and
	// request timeout.
	Client Client
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Airtable: cfg.Airtable,
		Client:   cfg.Client,
	}

	return clientCfg, clientCfg.validate()
}

func (c *ClientConfig) validate() error {
	switch {
	case c.Airtable.APIKey == "":
		return fmt.Errorf("%w: airtable api key", ErrMissingRequiredSetting)
	case c.Airtable.BaseID == "":
		return fmt.Errorf("%w: airtable base id", ErrMissingRequiredSetting)
	case c.Airtable.EntriesTable == "":
		return fmt.Errorf("%w: airtable entries table", ErrMissingRequiredSetting)
	case c.Client.AuthAddress == "":
		return fmt.Errorf("%w: auth server address", ErrMissingRequiredSetting)
	case c.Client.DBPath == "":
		return fmt.Errorf("%w: client db path", ErrMissingRequiredSetting)
	}

	return nil
}
