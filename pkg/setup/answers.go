package setup

import (
	"time"

	"github.com/watchhub/envctl/pkg/envfile"
	"github.com/watchhub/envctl/pkg/schema"
)

// Fixed development settings written to every generated file.
const (
	NodeEnvValue  = "development"
	DebugValue    = "true"
	LogLevelValue = "debug"
)

// Answers holds everything the wizard collected or generated.
type Answers struct {
	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string

	StripePublishableKey string
	StripeSecretKey      string
	StripeWebhookSecret  string

	PayPal             bool
	PayPalClientID     string
	PayPalClientSecret string

	AppName string
	AppURL  string

	External          bool
	TMDBAPIKey        string
	GoogleAnalyticsID string

	JWTSecret     string
	EncryptionKey string
}

// Document lays the answers out as an env file. Optional blocks only appear
// when their question was accepted and at least one of their values is set.
func (a *Answers) Document(generated time.Time) *envfile.Document {
	doc := &envfile.Document{Header: []string{
		envfile.Rule,
		"WATCHHUB - ENVIRONMENT CONFIGURATION",
		"Generated automatically on " + generated.Format("2006-01-02 15:04:05 MST"),
		envfile.Rule,
	}}

	doc.Add("SUPABASE CONFIGURATION",
		envfile.Entry{Key: schema.SupabaseURL, Value: a.SupabaseURL},
		envfile.Entry{Key: schema.SupabaseAnonKey, Value: a.SupabaseAnonKey},
		envfile.Entry{Key: schema.SupabaseServiceRoleKey, Value: a.SupabaseServiceRoleKey},
	)

	doc.Add("STRIPE CONFIGURATION",
		envfile.Entry{Key: schema.StripePublishableKey, Value: a.StripePublishableKey},
		envfile.Entry{Key: schema.StripeSecretKey, Value: a.StripeSecretKey},
		envfile.Entry{Key: schema.StripeWebhookSecret, Value: a.StripeWebhookSecret},
	)

	if a.PayPal && (a.PayPalClientID != "" || a.PayPalClientSecret != "") {
		doc.Add("PAYPAL CONFIGURATION",
			envfile.Entry{Key: schema.PayPalClientID, Value: a.PayPalClientID},
			envfile.Entry{Key: schema.PayPalClientSecret, Value: a.PayPalClientSecret},
		)
	}

	doc.Add("APPLICATION CONFIGURATION",
		envfile.Entry{Key: schema.AppName, Value: a.AppName},
		envfile.Entry{Key: schema.AppURL, Value: a.AppURL},
		envfile.Entry{Key: schema.APIURL, Value: a.AppURL + "/api"},
	)

	doc.Add("CONTENT & MEDIA CONFIGURATION",
		envfile.Entry{Key: schema.StorageBucketURL, Value: a.SupabaseURL + "/storage/v1/object/public"},
		envfile.Entry{Key: schema.CDNURL, Value: a.SupabaseURL},
	)

	if a.External {
		var external []envfile.Entry
		if a.TMDBAPIKey != "" {
			external = append(external, envfile.Entry{Key: schema.TMDBAPIKey, Value: a.TMDBAPIKey})
		}
		if a.GoogleAnalyticsID != "" {
			external = append(external, envfile.Entry{Key: schema.GoogleAnalyticsID, Value: a.GoogleAnalyticsID})
		}
		doc.Add("EXTERNAL SERVICES CONFIGURATION", external...)
	}

	doc.Add("DEVELOPMENT CONFIGURATION",
		envfile.Entry{Key: schema.NodeEnv, Value: NodeEnvValue},
		envfile.Entry{Key: schema.Debug, Value: DebugValue},
		envfile.Entry{Key: schema.LogLevel, Value: LogLevelValue},
	)

	doc.Add("SECURITY CONFIGURATION",
		envfile.Entry{Key: schema.JWTSecret, Value: a.JWTSecret},
		envfile.Entry{Key: schema.EncryptionKey, Value: a.EncryptionKey},
	)

	doc.Add("EMAIL CONFIGURATION",
		envfile.Entry{Key: schema.SMTPHost},
		envfile.Entry{Key: schema.SMTPPort, Value: DefaultSMTPPort},
		envfile.Entry{Key: schema.SMTPUser},
		envfile.Entry{Key: schema.SMTPPassword},
		envfile.Entry{Key: schema.FromEmail, Value: DefaultFromEmail},
	)

	return doc
}
