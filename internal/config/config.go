package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Storage    StorageConfig
	Database   DatabaseConfig
	Remote     RemoteConfig
	Kubernetes KubernetesConfig
	Predict    PredictConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
	// File enables rotated file output in addition to stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type StorageConfig struct {
	Driver      string // file, postgres, sqlite
	ArtifactDir string
	ModelPath   string
	DataPath    string
	SQLitePath  string
	// Watch reloads the serving model when ModelPath is replaced.
	Watch bool
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RemoteConfig struct {
	ModelURL string
	DataURL  string
	Timeout  time.Duration
}

type KubernetesConfig struct {
	Enabled        bool
	InCluster      bool
	KubeConfigPath string
	Namespace      string
	ConfigMapName  string
}

type PredictConfig struct {
	CacheSize  int
	BatchLimit int
}

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
)

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("LOGGER_FILE", "")
	v.SetDefault("LOGGER_MAX_SIZE_MB", 100)
	v.SetDefault("LOGGER_MAX_BACKUPS", 3)
	v.SetDefault("LOGGER_MAX_AGE_DAYS", 28)
	v.SetDefault("STORAGE_DRIVER", StorageDriverFile)
	v.SetDefault("STORAGE_ARTIFACT_DIR", "artifacts")
	v.SetDefault("STORAGE_MODEL_PATH", "co2_model.json")
	v.SetDefault("STORAGE_DATA_PATH", "data.csv")
	v.SetDefault("STORAGE_SQLITE_PATH", "co2.db")
	v.SetDefault("STORAGE_WATCH", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "co2")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("REMOTE_MODEL_URL", "")
	v.SetDefault("REMOTE_DATA_URL", "https://raw.githubusercontent.com/Prachi-02-02/co2_prediction_project/main/data.csv")
	v.SetDefault("REMOTE_TIMEOUT", "30s")
	v.SetDefault("K8S_ENABLED", false)
	v.SetDefault("K8S_IN_CLUSTER", false)
	v.SetDefault("K8S_KUBECONFIG", "")
	v.SetDefault("K8S_NAMESPACE", "default")
	v.SetDefault("K8S_CONFIGMAP_NAME", "co2-model-artifact")
	v.SetDefault("PREDICT_CACHE_SIZE", 32)
	v.SetDefault("PREDICT_BATCH_LIMIT", 8)

	// Env
	v.AutomaticEnv()

	remoteTimeout, err := time.ParseDuration(v.GetString("REMOTE_TIMEOUT"))
	if err != nil {
		remoteTimeout = 30 * time.Second
	}
	connLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		connLifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:      v.GetString("LOGGER_LEVEL"),
			Format:     v.GetString("LOGGER_FORMAT"),
			File:       v.GetString("LOGGER_FILE"),
			MaxSizeMB:  v.GetInt("LOGGER_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOGGER_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOGGER_MAX_AGE_DAYS"),
		},
		Storage: StorageConfig{
			Driver:      v.GetString("STORAGE_DRIVER"),
			ArtifactDir: v.GetString("STORAGE_ARTIFACT_DIR"),
			ModelPath:   v.GetString("STORAGE_MODEL_PATH"),
			DataPath:    v.GetString("STORAGE_DATA_PATH"),
			SQLitePath:  v.GetString("STORAGE_SQLITE_PATH"),
			Watch:       v.GetBool("STORAGE_WATCH"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connLifetime,
		},
		Remote: RemoteConfig{
			ModelURL: v.GetString("REMOTE_MODEL_URL"),
			DataURL:  v.GetString("REMOTE_DATA_URL"),
			Timeout:  remoteTimeout,
		},
		Kubernetes: KubernetesConfig{
			Enabled:        v.GetBool("K8S_ENABLED"),
			InCluster:      v.GetBool("K8S_IN_CLUSTER"),
			KubeConfigPath: v.GetString("K8S_KUBECONFIG"),
			Namespace:      v.GetString("K8S_NAMESPACE"),
			ConfigMapName:  v.GetString("K8S_CONFIGMAP_NAME"),
		},
		Predict: PredictConfig{
			CacheSize:  v.GetInt("PREDICT_CACHE_SIZE"),
			BatchLimit: v.GetInt("PREDICT_BATCH_LIMIT"),
		},
	}

	switch cfg.Storage.Driver {
	case StorageDriverFile, StorageDriverPostgres, StorageDriverSQLite:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	return cfg, nil
}
