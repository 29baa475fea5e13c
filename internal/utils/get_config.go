package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultShoppingCartExt = ".txt"
	DefaultArtifactStorage = "local"
	DefaultAppPort         = "8080"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	AppEnv  string `yaml:"APP_ENV"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Redis, used as shared limiter storage when set
	RedisAddr string `yaml:"REDIS_ADDR"`

	// Shopping cart download
	ShoppingCartExt string `yaml:"SHOPPING_CART_EXT"`
	ArtifactStorage string `yaml:"ARTIFACT_STORAGE"`
	ArtifactDir     string `yaml:"ARTIFACT_DIR"`
}

var config Config

// LoadConfig reads config.yaml from the working directory. Environment
// variables with the same key take precedence over the file.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	config = Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	applyEnvOverrides(&config)
	applyDefaults(&config)
}

func applyEnvOverrides(c *Config) {
	for key, field := range c.fields() {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}
}

func applyDefaults(c *Config) {
	if c.AppPort == "" {
		c.AppPort = DefaultAppPort
	}
	if c.ShoppingCartExt == "" {
		c.ShoppingCartExt = DefaultShoppingCartExt
	}
	if c.ArtifactStorage == "" {
		c.ArtifactStorage = DefaultArtifactStorage
	}
	if c.ArtifactDir == "" {
		c.ArtifactDir = os.TempDir()
	}
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":           &c.AppPort,
		"APP_ENV":            &c.AppEnv,
		"APP_URL":            &c.AppURL,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"JWT_SECRET":         &c.JWTSecret,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"REDIS_ADDR":         &c.RedisAddr,
		"SHOPPING_CART_EXT":  &c.ShoppingCartExt,
		"ARTIFACT_STORAGE":   &c.ArtifactStorage,
		"ARTIFACT_DIR":       &c.ArtifactDir,
	}
}

func GetConfig(key string) string {
	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}
