package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-airtable-base airtable base id
//	-entries-table airtable entries table id
//	-users-table airtable users table id
//	-auth-address auth server base url (client)
//	-db client cache sqlite file path
//	-token-secret one-time-code signing secret
//	-session-sign-key session token signing key
//	-session-duration session token duration (e.g., "12h")
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var jsonConfigPath string
	var airtableBase string
	var entriesTable string
	var usersTable string
	var authAddress string
	var dbPath string
	var tokenSecret string
	var sessionSignKey string
	var sessionDuration time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&airtableBase, "airtable-base", "", "Airtable base id")
	flag.StringVar(&entriesTable, "entries-table", "", "Airtable entries table id")
	flag.StringVar(&usersTable, "users-table", "", "Airtable users table id")
	flag.StringVar(&authAddress, "auth-address", "", "Auth server base URL")
	flag.StringVar(&dbPath, "db", "", "Client cache sqlite file path")
	flag.StringVar(&tokenSecret, "token-secret", "", "One-time-code signing secret")
	flag.StringVar(&sessionSignKey, "session-sign-key", "", "Session token signing key")
	flag.DurationVar(&sessionDuration, "session-duration", 0, "Session token duration (e.g., 12h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSecret:     tokenSecret,
			SessionSignKey:  sessionSignKey,
			SessionDuration: sessionDuration,
		},
		Airtable: Airtable{
			BaseID:       airtableBase,
			EntriesTable: entriesTable,
			UsersTable:   usersTable,
		},
		Server: Server{
			HTTPAddress: serverAddress,
		},
		Client: Client{
			AuthAddress: authAddress,
			DBPath:      dbPath,
		},
		JSONFilePath: jsonConfigPath,
	}
}
