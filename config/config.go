package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	Upload   Upload
	Analysis Analysis
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}
type JWT struct {
	Secret        string
	ExpiryMinutes int
}
type Upload struct {
	Dir string
}

// Analysis configures the external language-model collaborator.
type Analysis struct {
	URL            string
	TimeoutSeconds int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("JWT_EXPIRY_MINUTES", 30)
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("ANALYSIS_TIMEOUT_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.ExpiryMinutes = viper.GetInt("JWT_EXPIRY_MINUTES")

	config.Upload.Dir = viper.GetString("UPLOAD_DIR")

	config.Analysis.URL = viper.GetString("ANALYSIS_URL")
	config.Analysis.TimeoutSeconds = viper.GetInt("ANALYSIS_TIMEOUT_SECONDS")

	log.Info().
		Str("server_port", config.Server.Port).
		Str("database_host", config.Database.Host).
		Str("database_name", config.Database.Name).
		Str("upload_dir", config.Upload.Dir).
		Str("analysis_url", config.Analysis.URL).
		Msg("Config loaded")
	return &config, nil
}
