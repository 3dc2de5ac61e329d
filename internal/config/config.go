// Package config provides configuration structures and loading for swimrecords.
package config

// Data source kinds.
const (
	DataKindMySQL = "mysql"
	DataKindAPI   = "api"
	DataKindFile  = "file"
)

// Config represents the complete application configuration.
type Config struct {
	Source  DatabaseConfig `yaml:"source" mapstructure:"source"`
	Store   StoreConfig    `yaml:"store" mapstructure:"store"`
	Data    DataConfig     `yaml:"data" mapstructure:"data"`
	Import  ImportConfig   `yaml:"import" mapstructure:"import"`
	Server  ServerConfig   `yaml:"server" mapstructure:"server"`
	Output  OutputConfig   `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents the MySQL database holding meets, swimmers and times.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// StoreConfig names the tables used in the database.
type StoreConfig struct {
	Tables             TableNames `yaml:"tables" mapstructure:"tables"`
	LockTimeoutSeconds int        `yaml:"lock_timeout_seconds" mapstructure:"lock_timeout_seconds"`
}

// TableNames holds the table name of each entity.
type TableNames struct {
	Swimmers     string `yaml:"swimmers" mapstructure:"swimmers"`
	Meets        string `yaml:"meets" mapstructure:"meets"`
	Performances string `yaml:"performances" mapstructure:"performances"`
	Relays       string `yaml:"relays" mapstructure:"relays"`
}

// DataConfig selects where the record engine reads its performances from.
type DataConfig struct {
	Kind string    `yaml:"kind" mapstructure:"kind"` // mysql, api or file
	File string    `yaml:"file" mapstructure:"file"` // JSON dataset path for kind=file
	API  APIConfig `yaml:"api" mapstructure:"api"`
}

// APIConfig represents the HTTP API serving raw meet data.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// ImportConfig represents CSV bulk-import settings.
type ImportConfig struct {
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"` // rows per INSERT statement
}

// ServerConfig represents the read API server.
type ServerConfig struct {
	Addr                   string `yaml:"addr" mapstructure:"addr"`
	RefreshIntervalSeconds int    `yaml:"refresh_interval_seconds" mapstructure:"refresh_interval_seconds"` // 0 disables periodic refresh
}

// OutputConfig controls how reports are printed.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // table or json
	Color  bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Store: StoreConfig{
			Tables: TableNames{
				Swimmers:     "swimmers",
				Meets:        "meets",
				Performances: "performances",
				Relays:       "relays",
			},
			LockTimeoutSeconds: 10,
		},
		Data: DataConfig{
			Kind: DataKindMySQL,
			API: APIConfig{
				TimeoutSeconds: 15,
			},
		},
		Import: ImportConfig{
			BatchSize: 200,
		},
		Server: ServerConfig{
			Addr:                   ":8080",
			RefreshIntervalSeconds: 300,
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// UsesDatabase reports whether the configured data source is MySQL.
func (c *Config) UsesDatabase() bool {
	return c.Data.Kind == DataKindMySQL || c.Data.Kind == ""
}
