package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Storage struct {
		BasePath  string `yaml:"base_path"` // local upload root, served at /uploads
		BaseURL   string `yaml:"base_url"`  // public URL base for remote files
		Bucket    string `yaml:"bucket"`    // R2 bucket
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"` // R2 endpoint; remote storage disabled when empty
	} `yaml:"storage"`

	Upload struct {
		MaxSize           int64 `yaml:"max_size"`            // per-file ceiling in bytes
		ImageQuality      int   `yaml:"image_quality"`       // JPEG quality for migration
		ImageMaxDimension int   `yaml:"image_max_dimension"` // bound for migrated images
		RemoteMaxSize     int64 `yaml:"remote_max_size"`     // hard outbound ceiling per asset
		UploadTimeout     int   `yaml:"upload_timeout"`      // remote upload timeout, seconds
	} `yaml:"upload"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		ContactEmail string `yaml:"contact_email"` // recipient of contact-form notifications
	} `yaml:"email"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig populates AppConfig. When DATABASE_URL is set the whole
// configuration comes from environment variables (test/CI mode), otherwise
// from the yaml file at CONFIG_PATH (default config/config.yaml).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.Bucket = os.Getenv("R2_BUCKET")
	cfg.Storage.AccessKey = os.Getenv("R2_ACCESS_KEY")
	cfg.Storage.SecretKey = os.Getenv("R2_SECRET_KEY")
	cfg.Storage.Endpoint = os.Getenv("R2_ENDPOINT")
	cfg.Storage.BaseURL = os.Getenv("R2_BASE_URL")

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 20 * 1024 * 1024 // 20MB
	}
	if cfg.Upload.ImageQuality == 0 {
		cfg.Upload.ImageQuality = 80
	}
	if cfg.Upload.ImageMaxDimension == 0 {
		cfg.Upload.ImageMaxDimension = 1920
	}
	if cfg.Upload.RemoteMaxSize == 0 {
		cfg.Upload.RemoteMaxSize = 10 * 1024 * 1024 // 10MB after compression
	}
	if cfg.Upload.UploadTimeout == 0 {
		cfg.Upload.UploadTimeout = 30
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}

// GetConfig returns the loaded configuration, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
