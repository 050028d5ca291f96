package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAllowedEmails is the compiled-in allow-list. It is the entire
// authorization policy: nobody outside this set ever sees the gallery.
// ALLOWED_EMAILS overrides it without a rebuild.
var DefaultAllowedEmails = []string{
	"hiiyogita11@gmail.com",
	"policeofficers100@gmail.com",
}

type Config struct {
	AppPort string
	AppEnv  string

	PublicBaseURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	CloudName      string
	CloudAPIKey    string
	CloudAPISecret string

	SessionSecret string

	RedisAddr     string
	RedisPassword string

	AllowedEmails []string
}

func Load() Config {

	// Missing .env is fine; deployments inject the environment directly.
	_ = godotenv.Load()

	port := envOrDefault("APP_PORT", "3000")
	env := envOrDefault("APP_ENV", "development")
	baseURL := envOrDefault("PUBLIC_BASE_URL", "https://confession-mauve-nu.vercel.app")

	cfg := Config{

		AppPort: port,
		AppEnv:  env,

		PublicBaseURL: baseURL,

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  envOrDefault("GOOGLE_REDIRECT_URL", callbackURL(env, baseURL, port)),

		CloudName:      os.Getenv("CLOUD_NAME"),
		CloudAPIKey:    os.Getenv("API_KEY"),
		CloudAPISecret: os.Getenv("API_SECRET"),

		SessionSecret: envOrDefault("SESSION_SECRET", "super_secret_key_123"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AllowedEmails: allowedEmails(),
	}

	return cfg

}

// Production reports whether the deployment environment flag selects the
// hosted callback URL and secure cookies.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

func callbackURL(env, baseURL, port string) string {
	if env == "production" {
		return strings.TrimRight(baseURL, "/") + "/auth/google/callback"
	}
	return "http://localhost:" + port + "/auth/google/callback"
}

func allowedEmails() []string {
	raw := os.Getenv("ALLOWED_EMAILS")
	if raw == "" {
		return DefaultAllowedEmails
	}

	var emails []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
