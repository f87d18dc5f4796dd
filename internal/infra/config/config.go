// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names accepted by the *_STORE variables.
const (
	StoreBolt      = "bolt"
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
	StoreLocal     = "local"
	StoreGCS       = "gcs"
)

// Config holds the process settings read from the environment.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	// Google Cloud
	ProjectID                string
	FirestoreCredentialsFile string
	GCPCreds                 string

	// Backends
	CatalogStore string // bolt | firestore
	CartStore    string // memory | firestore
	AssetStore   string // local | gcs
	BoltPath     string

	// Assets
	GCSBucket     string
	PublicBaseURL string
	UploadsDir    string
	UploadsURL    string

	// Mail
	SendGridAPIKey       string
	SendGridAPIKeySecret string
	MailFrom             string
	MailFromName         string
	ContactInbox         string

	// HTTP
	AdminUIDs      []string
	AllowedOrigins []string
	CookieSecure   bool

	ContentPath string
}

// Load reads the environment. Outside production a .env file in the
// working directory is applied first when present.
func Load() *Config {
	env := getenvDefault("ENV", "development")
	if env != "production" {
		_ = godotenv.Load()
	}

	projectID := firstEnv("FIRESTORE_PROJECT_ID", "GCP_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "FIREBASE_PROJECT_ID")

	return &Config{
		Env:      env,
		Port:     strings.TrimPrefix(getenvDefault("PORT", "8080"), ":"),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),

		ProjectID:                projectID,
		FirestoreCredentialsFile: strings.TrimSpace(os.Getenv("FIRESTORE_CREDENTIALS_FILE")),
		GCPCreds:                 strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),

		CatalogStore: strings.ToLower(getenvDefault("CATALOG_STORE", StoreBolt)),
		CartStore:    strings.ToLower(getenvDefault("CART_STORE", StoreMemory)),
		AssetStore:   strings.ToLower(getenvDefault("ASSET_STORE", StoreLocal)),
		BoltPath:     getenvDefault("BOLT_PATH", "data/folio.db"),

		GCSBucket:     strings.TrimSpace(os.Getenv("GCS_BUCKET")),
		PublicBaseURL: strings.TrimSpace(os.Getenv("ASSET_PUBLIC_BASE_URL")),
		UploadsDir:    getenvDefault("UPLOADS_DIR", "data/uploads"),
		UploadsURL:    getenvDefault("UPLOADS_URL", "/uploads"),

		SendGridAPIKey:       strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		SendGridAPIKeySecret: strings.TrimSpace(os.Getenv("SENDGRID_API_KEY_SECRET")),
		MailFrom:             strings.TrimSpace(os.Getenv("MAIL_FROM")),
		MailFromName:         getenvDefault("MAIL_FROM_NAME", "Portfolio"),
		ContactInbox:         strings.TrimSpace(os.Getenv("CONTACT_INBOX")),

		AdminUIDs:      splitCSV(os.Getenv("ADMIN_UIDS")),
		AllowedOrigins: splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
		CookieSecure:   getenvBool("COOKIE_SECURE", env == "production"),

		ContentPath: getenvDefault("CONTENT_PATH", "content/site.yaml"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NeedsGoogleCloud reports whether any configured backend talks to Google Cloud.
func (c *Config) NeedsGoogleCloud() bool {
	return c.CatalogStore == StoreFirestore ||
		c.CartStore == StoreFirestore ||
		c.AssetStore == StoreGCS ||
		len(c.AdminUIDs) > 0 ||
		c.SendGridAPIKeySecret != ""
}

// CredentialsFile is the explicit credentials file, if any.
func (c *Config) CredentialsFile() string {
	if c.FirestoreCredentialsFile != "" {
		return c.FirestoreCredentialsFile
	}
	return c.GCPCreds
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

// splitCSV parses "a,b,c" / "a, b, c"; empty entries are dropped.
func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
