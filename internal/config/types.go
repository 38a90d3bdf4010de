package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Slack     SlackConfig
	Turso     TursoConfig
	ProjectID string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// TursoConfig points at the remote replica. Left empty, the service runs
// against a local SQLite file instead.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
