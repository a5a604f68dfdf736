package config

import (
	"os"
	"strings"
)

type Config struct {
	MongoURI          string
	AccessTokenSecret string
	Port              string
	Host              string   // Public base URL for building image links (e.g. http://localhost:8000)
	UploadDir         string   // Local directory for uploaded images
	AssetsDir         string   // Static assets (placeholder image etc.)
	WebDir            string   // Static SPA files
	AllowedOrigins    []string // CORS: from ALLOWED_ORIGINS, default "*" like the original service
}

func Load() *Config {
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	host := strings.TrimRight(getEnv("HOST", "http://localhost:8000"), "/")

	return &Config{
		MongoURI:          getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/travel-journal")),
		AccessTokenSecret: getEnv("ACCESS_TOKEN_SECRET", "change-me-in-production"),
		Port:              getEnv("PORT", "8000"),
		Host:              host,
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		AssetsDir:         getEnv("ASSETS_DIR", "./assets"),
		WebDir:            getEnv("WEB_DIR", "./web"),
		AllowedOrigins:    allowedOrigins,
	}
}

// PlaceholderImageURL is substituted when an edit omits imageUrl.
func (c *Config) PlaceholderImageURL() string {
	return c.Host + "/assets/placeholder.png"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
