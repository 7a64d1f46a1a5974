package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required values are enforced by must() and
// mustInt(); optional values default to empty strings and let the
// corresponding subsystem degrade (noop mailer, disabled cache/limiter).
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	AppURL       string // public base URL, used for checkout redirect targets
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign admin access tokens
	AccessTTLMin int    // access token time-to-live in minutes

	AdminEmail    string // admin login email
	AdminPassHash string // bcrypt hash of the admin password

	StripeSecretKey     string // Stripe API secret key
	StripeWebhookSecret string // shared secret used to verify webhook signatures

	ResendAPIKey string // Resend API key; empty disables outgoing email
	MailFrom     string // From address for notification emails
	RabbitURL    string // AMQP broker URL; empty disables the notification queue
}

// Load reads configuration from the environment.  A .env file is loaded
// first when present so local development matches deployment; missing
// required variables abort startup with a fatal log message.
func Load() Config {
	if err := godotenv.Load(".env"); err == nil {
		log.Println("loaded configuration from .env file")
	}
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		AppURL:       must("APP_URL"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),

		AdminEmail:    must("ADMIN_EMAIL"),
		AdminPassHash: must("ADMIN_PASSWORD_HASH"),

		StripeSecretKey:     must("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: must("STRIPE_WEBHOOK_SECRET"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		RabbitURL:    os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
