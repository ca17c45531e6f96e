package types

// AppConfig is the on-disk YAML configuration.
type AppConfig struct {
	BotToken        string  `yaml:"botToken"`
	Admins          []int64 `yaml:"admins"`
	LogChannel      int64   `yaml:"logChannel"`
	RedirectChannel int64   `yaml:"redirectChannel"`
	BaseURL         string  `yaml:"baseUrl"` // public base URL with trailing slash, e.g. https://stream.example.com/
	Port            int     `yaml:"port"`
	DatabaseDSN     string  `yaml:"databaseDsn"`
	OMDbAPIKey      string  `yaml:"omdbApiKey"`
	LinkFile        string  `yaml:"linkFile"`
	SessionTTLMin   int     `yaml:"sessionTtlMinutes"`
	EditTTLMin      int     `yaml:"editTtlMinutes"`
	DownloadRPS     float64 `yaml:"downloadRps"`
	DownloadBurst   int     `yaml:"downloadBurst"`
}

// Config holds runtime overrides from CLI flags.
type Config struct {
	Log           string
	UseConfigPath string
	UsePort       int
	UseBaseURL    string
	UseLinkFile   string
}
