package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DevSecretKey is the compiled-in fallback signing key. It exists so the
// service can start in local development without any configuration; running
// with it in production is a known weakness and is loudly logged.
const DevSecretKey = "labelwise-dev-secret-change-this-in-production"

type Config struct {
	APIPort  int `yaml:"apiPort"`
	Database struct {
		Type       string `yaml:"type"`
		Path       string `yaml:"path"`
		DSN        string `yaml:"dsn"`
		WALMode    bool   `yaml:"walMode"`
		MaxRetries int    `yaml:"maxRetries"`
		RetryDelay int    `yaml:"retryDelay"`
	} `yaml:"database"`
	Auth struct {
		SecretKey       string `yaml:"secretKey"`
		TokenTTLMinutes int    `yaml:"tokenTTLMinutes"`
	} `yaml:"auth"`
	Gemini struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
	S3 struct {
		Endpoint        string `yaml:"endpoint"`
		Region          string `yaml:"region"`
		Bucket          string `yaml:"bucket"`
		AccessKeyID     string `yaml:"accessKeyId"`
		SecretAccessKey string `yaml:"secretAccessKey"`
	} `yaml:"s3"`
}

// ArchiveEnabled reports whether enough S3 settings are present to archive
// uploaded label images.
func (c *Config) ArchiveEnabled() bool {
	return c.S3.Endpoint != "" && c.S3.Bucket != ""
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("LABELWISE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if os.IsNotExist(err) {
				log.Printf("Warning: Config file %s not found. Using defaults and environment variables.", path)
			} else {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIPort == 0 {
		cfg.APIPort = 8081
		log.Println("apiPort not specified, using default 8081")
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./labelwise.db"
		log.Println("Database path not specified, using default ./labelwise.db")
	}
	if !v.IsSet("database.walMode") {
		cfg.Database.WALMode = true
	}
	if cfg.Database.MaxRetries == 0 {
		cfg.Database.MaxRetries = 5
	}
	if cfg.Database.RetryDelay == 0 {
		cfg.Database.RetryDelay = 5
	}

	if cfg.Auth.SecretKey == "" {
		cfg.Auth.SecretKey = os.Getenv("LABELWISE_SECRET_KEY")
	}
	if cfg.Auth.SecretKey == "" {
		cfg.Auth.SecretKey = DevSecretKey
		log.Println("WARNING: auth.secretKey not configured, falling back to the built-in development key. Set LABELWISE_SECRET_KEY in production.")
	}
	if cfg.Auth.TokenTTLMinutes == 0 {
		cfg.Auth.TokenTTLMinutes = 30
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-flash"
	}

	return &cfg, nil
}
