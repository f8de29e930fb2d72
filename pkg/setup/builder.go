// Package setup implements the interactive wizard that writes a WatchHub
// env file.
package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/watchhub/envctl/pkg/cli/format"
	"github.com/watchhub/envctl/pkg/crypto"
	"github.com/watchhub/envctl/pkg/envfile"
	"github.com/watchhub/envctl/pkg/log"
	"github.com/watchhub/envctl/pkg/schema"
)

const (
	DefaultAppName = "WatchHub"
	DefaultAppURL  = "http://localhost:5173"

	JWTSecretLength     = 64
	EncryptionKeyLength = 32

	DefaultSMTPPort  = "587"
	DefaultFromEmail = "noreply@watchhub.com"
)

// Outcome is how a wizard run ended.
type Outcome int

const (
	// Written means the env file was created or replaced.
	Written Outcome = iota
	// Declined means the operator refused to overwrite an existing file.
	Declined
)

// Builder runs the wizard.
type Builder struct {
	// Path is the env file to write.
	Path     string
	Prompter Prompter
	Printer  *format.Printer

	// Now stamps the generated header. Defaults to time.Now.
	Now func() time.Time
	// Generate produces the security tokens. Defaults to
	// crypto.RandomAlphanumeric.
	Generate func(n int) (string, error)
}

// Run asks every question, generates the security tokens and writes the env
// file. Declining to overwrite an existing file is not an error.
func (b *Builder) Run(ctx context.Context) (Outcome, error) {
	logger := log.FromContext(ctx).WithComponent("setup")
	p := b.Printer

	p.Blank()
	p.Line(format.Header, "🎬 WATCHHUB SETUP 🎬")
	p.Blank()
	p.Line(format.Warning, "This wizard will help you set every environment variable WatchHub needs.")
	p.Blank()

	if envfile.Exists(b.Path) {
		answer, err := b.Prompter.Ask(ctx, p.Paint(format.Warning, "⚠️  The .env file already exists. Overwrite it? (y/N): "))
		if err != nil {
			return Declined, err
		}
		if !confirmed(answer) {
			p.Line(format.Failure, "Setup cancelled.")
			logger.Info("Overwrite declined", log.Str("path", b.Path))
			return Declined, nil
		}
	}

	answers, err := b.ask(ctx)
	if err != nil {
		return Declined, err
	}

	p.Blank()
	p.Line(format.Info, "🔐 GENERATING SECURITY KEYS...")
	if answers.JWTSecret, err = b.generate(JWTSecretLength); err != nil {
		return Declined, fmt.Errorf("failed to generate %s: %w", schema.JWTSecret, err)
	}
	if answers.EncryptionKey, err = b.generate(EncryptionKeyLength); err != nil {
		return Declined, fmt.Errorf("failed to generate %s: %w", schema.EncryptionKey, err)
	}

	if err := answers.Document(b.now()).WriteFile(b.Path); err != nil {
		return Declined, err
	}
	logger.Info("Env file written", log.Str("path", b.Path), log.Bool("paypal", answers.PayPal), log.Bool("external_services", answers.External))

	p.Blank()
	p.Line(format.Success, "✅ SETUP COMPLETE")
	p.Line(format.Success, "📁 .env file created at: %s", b.Path)
	p.Blank()
	p.Line(format.Warning, "📋 NEXT STEPS:")
	p.Line(format.Plain, "1. Review the variables in the .env file")
	p.Line(format.Plain, "2. Run: envctl check to validate the configuration")
	p.Line(format.Plain, "3. Run: envctl secrets to publish the Edge Function secrets")

	return Written, nil
}

func (b *Builder) ask(ctx context.Context) (*Answers, error) {
	p := b.Printer
	s := &session{ctx: ctx, prompter: b.Prompter}
	a := &Answers{}

	p.Line(format.Bold, "📋 STEP BY STEP CONFIGURATION")
	p.Blank()

	p.Line(format.Info, "🗄️  SUPABASE")
	a.SupabaseURL = s.ask("Supabase project URL: ")
	a.SupabaseAnonKey = s.ask("Supabase anon key: ")
	a.SupabaseServiceRoleKey = s.secret("Supabase service role key: ")

	s.section(p, "💳 STRIPE")
	a.StripePublishableKey = s.ask("Stripe publishable key: ")
	a.StripeSecretKey = s.secret("Stripe secret key: ")
	a.StripeWebhookSecret = s.secret("Stripe webhook secret (optional): ")

	s.section(p, "🅿️  PAYPAL (OPTIONAL)")
	if a.PayPal = confirmed(s.ask("Configure PayPal? (y/N): ")); a.PayPal {
		a.PayPalClientID = s.ask("PayPal client ID: ")
		a.PayPalClientSecret = s.secret("PayPal client secret: ")
	}

	s.section(p, "⚙️  APPLICATION")
	a.AppName = s.askDefault(fmt.Sprintf("Application name (%s): ", DefaultAppName), DefaultAppName)
	a.AppURL = s.askDefault(fmt.Sprintf("Application URL (%s): ", DefaultAppURL), DefaultAppURL)

	s.section(p, "🌐 EXTERNAL SERVICES (OPTIONAL)")
	if a.External = confirmed(s.ask("Configure external services (TMDB, Analytics)? (y/N): ")); a.External {
		a.TMDBAPIKey = s.secret("TMDB API key (optional): ")
		a.GoogleAnalyticsID = s.ask("Google Analytics ID (optional): ")
	}

	return a, s.err
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Builder) generate(n int) (string, error) {
	if b.Generate != nil {
		return b.Generate(n)
	}
	return crypto.RandomAlphanumeric(n)
}

// session asks questions until the first error, after which every call is a
// no-op returning "".
type session struct {
	ctx      context.Context
	prompter Prompter
	err      error
}

func (s *session) ask(prompt string) string {
	if s.err != nil {
		return ""
	}
	var answer string
	answer, s.err = s.prompter.Ask(s.ctx, prompt)
	return answer
}

func (s *session) secret(prompt string) string {
	if s.err != nil {
		return ""
	}
	var answer string
	answer, s.err = s.prompter.AskSecret(s.ctx, prompt)
	return answer
}

func (s *session) askDefault(prompt, def string) string {
	if answer := s.ask(prompt); answer != "" {
		return answer
	}
	return def
}

func (s *session) section(p *format.Printer, title string) {
	if s.err != nil {
		return
	}
	p.Blank()
	p.Line(format.Info, title)
}
