// Ininicializing common application configuration
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "HOTEL"

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Export   ExportConfig   `mapstructure:"export"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Serve   bool   `mapstructure:"serve"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Idle_timeout time.Duration `mapstructure:"idle_timeout"`
	Mode         string        `mapstructure:"mode"`
}

// StorageConfig описывает, где хранится документ с бронированиями
type StorageConfig struct {
	Backend    string `mapstructure:"backend"` // file, redis, postgres
	BasePath   string `mapstructure:"base_path"`
	LedgerPath string `mapstructure:"ledger_path"`
}

type ExportConfig struct {
	Path string `mapstructure:"path"`
}

type WorkerConfig struct {
	ExportInterval time.Duration `mapstructure:"export_interval"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, text
	Output string `mapstructure:"output"` // stderr, stdout or file path
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// Настройки пула соединений
	MaxRetries   int           `mapstructure:"max_retries"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// flagKeys maps command line flags to viper keys
var flagKeys = map[string]string{
	"serve":       "app.serve",
	"port":        "server.port",
	"storage":     "storage.backend",
	"data-file":   "storage.ledger_path",
	"export-file": "export.path",
	"log-level":   "logging.level",
}

// NewFlagSet returns the command line flags understood by LoadConfig.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", GetEnv("HOTEL_CONFIG", ""), "path to config file (default ./config/config.yaml)")
	fs.Bool("serve", false, "run the HTTP API instead of the interactive menu")
	fs.String("port", "", "HTTP port in serve mode")
	fs.String("storage", "", "ledger storage backend: file, redis or postgres")
	fs.String("data-file", "", "ledger document path")
	fs.String("export-file", "", "CSV export path")
	fs.String("log-level", "", "log level")
	return fs
}

// LoadConfig reads config.yaml (if any), HOTEL_* environment variables and
// the already parsed flags, in increasing order of precedence.
func LoadConfig(fs *pflag.FlagSet) (*viper.Viper, error) {

	viperInstance := viper.New()
	setDefaults(viperInstance)

	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	configFile := ""
	if fs != nil {
		configFile, _ = fs.GetString("config")
	}
	if configFile != "" {
		viperInstance.SetConfigFile(configFile)
	} else {
		viperInstance.AddConfigPath("./config")
		viperInstance.SetConfigName("config")
		viperInstance.SetConfigType("yaml")
	}

	if err := viperInstance.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := viperInstance.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}

	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setDefaults устанавливает значения по умолчанию
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hotel-accounting-system")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.serve", false)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.mode", "release")

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.base_path", ".")
	v.SetDefault("storage.ledger_path", "hotel_data.json")

	v.SetDefault("export.path", "hotel_data.csv")

	v.SetDefault("worker.export_interval", time.Duration(0))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "hotel")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "hotel")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
}
