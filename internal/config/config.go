package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID   string
	Region      string
	LogLevel    string
	Port        string
	VertexModel string
}

func New() *Config {
	// Local development only; the file is absent in deployed environments.
	_ = godotenv.Load()

	return &Config{
		ProjectID:   os.Getenv("PROJECTID"),
		Region:      os.Getenv("REGION"),
		LogLevel:    os.Getenv("LOGLEVEL"),
		Port:        getPort(os.Getenv("PORT")),
		VertexModel: os.Getenv("VERTEXMODEL"),
	}
}

func getPort(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}
