package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and a
// string-friendly Duration type, so operators can keep a locally persisted
// override file next to the binary.
type StructuredJSONConfig struct {
	App struct {
		TokenSecret     string   `json:"token_secret"`
		SessionSignKey  string   `json:"session_sign_key"`
		SessionIssuer   string   `json:"session_issuer"`
		SessionDuration Duration `json:"session_duration"`
		AdminPassword   string   `json:"admin_password"`
		Version         string   `json:"version"`
	} `json:"app,omitempty"`

	Airtable struct {
		APIKey         string   `json:"api_key"`
		BaseID         string   `json:"base_id"`
		EntriesTable   string   `json:"entries_table"`
		UsersTable     string   `json:"users_table"`
		VesselsTable   string   `json:"vessels_table"`
		TagsTable      string   `json:"tags_table"`
		RequestTimeout Duration `json:"request_timeout"`

		Fields struct {
			Vessel   string `json:"vessel"`
			Date     string `json:"date"`
			Start    string `json:"start"`
			End      string `json:"end"`
			Activity string `json:"activity"`
			Tag      string `json:"tag"`
		} `json:"fields,omitempty"`
	} `json:"airtable,omitempty"`

	Email struct {
		ResendAPIKey string `json:"resend_api_key"`
		From         string `json:"from"`
	} `json:"email,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Client struct {
		AuthAddress    string   `json:"auth_address"`
		DBPath         string   `json:"db_path"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"client,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSecret:     jsonCfg.App.TokenSecret,
			SessionSignKey:  jsonCfg.App.SessionSignKey,
			SessionIssuer:   jsonCfg.App.SessionIssuer,
			SessionDuration: time.Duration(jsonCfg.App.SessionDuration),
			AdminPassword:   jsonCfg.App.AdminPassword,
			Version:         jsonCfg.App.Version,
		},
		Airtable: Airtable{
			APIKey:         jsonCfg.Airtable.APIKey,
			BaseID:         jsonCfg.Airtable.BaseID,
			EntriesTable:   jsonCfg.Airtable.EntriesTable,
			UsersTable:     jsonCfg.Airtable.UsersTable,
			VesselsTable:   jsonCfg.Airtable.VesselsTable,
			TagsTable:      jsonCfg.Airtable.TagsTable,
			RequestTimeout: time.Duration(jsonCfg.Airtable.RequestTimeout),
			Fields: Fields{
				Vessel:   jsonCfg.Airtable.Fields.Vessel,
				Date:     jsonCfg.Airtable.Fields.Date,
				Start:    jsonCfg.Airtable.Fields.Start,
				End:      jsonCfg.Airtable.Fields.End,
				Activity: jsonCfg.Airtable.Fields.Activity,
				Tag:      jsonCfg.Airtable.Fields.Tag,
			},
		},
		Email: Email{
			ResendAPIKey: jsonCfg.Email.ResendAPIKey,
			From:         jsonCfg.Email.From,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Client: Client{
			AuthAddress:    jsonCfg.Client.AuthAddress,
			DBPath:         jsonCfg.Client.DBPath,
			RequestTimeout: time.Duration(jsonCfg.Client.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
