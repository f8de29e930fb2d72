// Package schema is the single source of truth for the WatchHub environment:
// which keys exist, how they are grouped, which are required, and how they
// are renamed when published to the edge-function secret store.
package schema

// Environment keys. The names are consumed by the frontend build and the
// edge functions and must not change.
const (
	SupabaseURL            = "VITE_SUPABASE_URL"
	SupabaseAnonKey        = "VITE_SUPABASE_ANON_KEY"
	SupabaseServiceRoleKey = "SUPABASE_SERVICE_ROLE_KEY"

	StripePublishableKey = "VITE_STRIPE_PUBLISHABLE_KEY"
	StripeSecretKey      = "STRIPE_SECRET_KEY"
	StripeWebhookSecret  = "STRIPE_WEBHOOK_SECRET"

	PayPalClientID     = "VITE_PAYPAL_CLIENT_ID"
	PayPalClientSecret = "PAYPAL_CLIENT_SECRET"

	AppName = "VITE_APP_NAME"
	AppURL  = "VITE_APP_URL"
	APIURL  = "VITE_API_URL"

	StorageBucketURL = "VITE_STORAGE_BUCKET_URL"
	CDNURL           = "VITE_CDN_URL"

	TMDBAPIKey        = "TMDB_API_KEY"
	GoogleAnalyticsID = "VITE_GOOGLE_ANALYTICS_ID"

	NodeEnv  = "NODE_ENV"
	Debug    = "VITE_DEBUG"
	LogLevel = "VITE_LOG_LEVEL"

	JWTSecret     = "JWT_SECRET"
	EncryptionKey = "ENCRYPTION_KEY"

	SMTPHost     = "SMTP_HOST"
	SMTPPort     = "SMTP_PORT"
	SMTPUser     = "SMTP_USER"
	SMTPPassword = "SMTP_PASSWORD"
	FromEmail    = "FROM_EMAIL"
)

// CategoryID identifies a group of keys.
type CategoryID string

const (
	CategorySupabase    CategoryID = "supabase"
	CategoryStripe      CategoryID = "stripe"
	CategoryPayPal      CategoryID = "paypal"
	CategoryApplication CategoryID = "application"
	CategorySecurity    CategoryID = "security"
	CategoryEmail       CategoryID = "email"
)

// Category is a titled group of keys in the validation report.
type Category struct {
	ID    CategoryID
	Title string
}

// Entry describes one environment key.
type Entry struct {
	Key         string
	Category    CategoryID
	Description string

	// Required entries make the configuration incomplete when empty.
	Required bool

	// Checked entries are evaluated by the validator.
	Checked bool

	// SecretName is the name used in the remote secret store; empty means the
	// key is never published.
	SecretName string

	// FunctionsEnv marks secrets that are also written to the edge-function
	// env file.
	FunctionsEnv bool
}

// Published reports whether the entry is pushed to the secret store.
func (e Entry) Published() bool {
	return e.SecretName != ""
}

var categories = []Category{
	{ID: CategorySupabase, Title: "Supabase (required)"},
	{ID: CategoryStripe, Title: "Stripe (required)"},
	{ID: CategoryPayPal, Title: "PayPal (optional)"},
	{ID: CategoryApplication, Title: "Application"},
	{ID: CategorySecurity, Title: "Security"},
	{ID: CategoryEmail, Title: "Email"},
}

var entries = []Entry{
	{Key: SupabaseURL, Category: CategorySupabase, Description: "Supabase project URL", Required: true, Checked: true, SecretName: "SUPABASE_URL", FunctionsEnv: true},
	{Key: SupabaseAnonKey, Category: CategorySupabase, Description: "Supabase anonymous key", Required: true, Checked: true, SecretName: "SUPABASE_ANON_KEY", FunctionsEnv: true},
	{Key: SupabaseServiceRoleKey, Category: CategorySupabase, Description: "Supabase service role key", Required: true, Checked: true, SecretName: "SUPABASE_SERVICE_ROLE_KEY", FunctionsEnv: true},

	{Key: StripePublishableKey, Category: CategoryStripe, Description: "Stripe publishable key", Required: true, Checked: true},
	{Key: StripeSecretKey, Category: CategoryStripe, Description: "Stripe secret key", Required: true, Checked: true, SecretName: "STRIPE_SECRET_KEY", FunctionsEnv: true},
	{Key: StripeWebhookSecret, Category: CategoryStripe, Description: "Stripe webhook secret", Checked: true, SecretName: "STRIPE_WEBHOOK_SECRET", FunctionsEnv: true},

	{Key: PayPalClientID, Category: CategoryPayPal, Description: "PayPal client ID", Checked: true, SecretName: "PAYPAL_CLIENT_ID", FunctionsEnv: true},
	{Key: PayPalClientSecret, Category: CategoryPayPal, Description: "PayPal client secret", Checked: true, SecretName: "PAYPAL_CLIENT_SECRET", FunctionsEnv: true},

	{Key: AppName, Category: CategoryApplication, Description: "Application name", Checked: true},
	{Key: AppURL, Category: CategoryApplication, Description: "Application URL", Checked: true},
	{Key: NodeEnv, Category: CategoryApplication, Description: "Runtime environment", Checked: true},

	{Key: JWTSecret, Category: CategorySecurity, Description: "JWT signing secret", Required: true, Checked: true, SecretName: "JWT_SECRET", FunctionsEnv: true},
	{Key: EncryptionKey, Category: CategorySecurity, Description: "Encryption key", Required: true, Checked: true, SecretName: "ENCRYPTION_KEY", FunctionsEnv: true},

	{Key: SMTPHost, Category: CategoryEmail, Description: "SMTP host", SecretName: "SMTP_HOST"},
	{Key: SMTPPort, Category: CategoryEmail, Description: "SMTP port", SecretName: "SMTP_PORT"},
	{Key: SMTPUser, Category: CategoryEmail, Description: "SMTP user", SecretName: "SMTP_USER"},
	{Key: SMTPPassword, Category: CategoryEmail, Description: "SMTP password", SecretName: "SMTP_PASSWORD"},
	{Key: FromEmail, Category: CategoryEmail, Description: "Sender address", SecretName: "FROM_EMAIL"},
}

// Categories returns all categories in report order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Entries returns every known entry in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup finds the entry for key.
func Lookup(key string) (Entry, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// CheckedIn returns the validator's entries for a category, in order.
func CheckedIn(id CategoryID) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Checked && e.Category == id {
			out = append(out, e)
		}
	}
	return out
}

// PublishedEntries returns the entries pushed to the secret store, in push
// order.
func PublishedEntries() []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Published() {
			out = append(out, e)
		}
	}
	return out
}

// FunctionsEnvEntries returns the entries written to the edge-function env
// file, in file order.
func FunctionsEnvEntries() []Entry {
	var out []Entry
	for _, e := range entries {
		if e.FunctionsEnv {
			out = append(out, e)
		}
	}
	return out
}

// MandatoryForPublish lists the keys the publisher refuses to run without.
func MandatoryForPublish() []string {
	return []string{SupabaseURL, SupabaseServiceRoleKey}
}
