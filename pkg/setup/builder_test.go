package setup

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchhub/envctl/pkg/cli/format"
	"github.com/watchhub/envctl/pkg/crypto"
	"github.com/watchhub/envctl/pkg/envfile"
	"github.com/watchhub/envctl/pkg/log"
	"github.com/watchhub/envctl/pkg/schema"
)

func newBuilder(path, input string, out *bytes.Buffer) *Builder {
	return &Builder{
		Path:     path,
		Prompter: NewLinePrompter(strings.NewReader(input), out),
		Printer:  format.NewPrinter(out, false),
		Now: func() time.Time {
			return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		},
	}
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestBuilder_Run_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	var out bytes.Buffer
	b := newBuilder(path, script(
		"https://abc.supabase.co",
		"anon-key",
		"service-key",
		"pk_test_1",
		"sk_test_1",
		"",
		"y",
		"pp-id",
		"pp-secret",
		"",
		"https://watchhub.example",
		"N",
	), &out)

	logger := log.NewTestLogger()
	outcome, err := b.Run(log.WithLogger(context.Background(), logger))
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)
	assert.True(t, logger.HasMessage(log.InfoLevel, "Env file written"))

	f, err := envfile.Read(path)
	require.NoError(t, err)

	assert.Equal(t, "https://abc.supabase.co", f.Value(schema.SupabaseURL))
	assert.Equal(t, "service-key", f.Value(schema.SupabaseServiceRoleKey))
	assert.Equal(t, "", f.Value(schema.StripeWebhookSecret))
	assert.Equal(t, "pp-id", f.Value(schema.PayPalClientID))
	assert.Equal(t, "pp-secret", f.Value(schema.PayPalClientSecret))
	assert.Equal(t, DefaultAppName, f.Value(schema.AppName))
	assert.Equal(t, "https://watchhub.example/api", f.Value(schema.APIURL))
	assert.Equal(t, "https://abc.supabase.co/storage/v1/object/public", f.Value(schema.StorageBucketURL))
	assert.Equal(t, "https://abc.supabase.co", f.Value(schema.CDNURL))
	assert.Equal(t, "development", f.Value(schema.NodeEnv))
	assert.Equal(t, "true", f.Value(schema.Debug))
	assert.Equal(t, "debug", f.Value(schema.LogLevel))
	assert.Equal(t, "587", f.Value(schema.SMTPPort))
	assert.Equal(t, DefaultFromEmail, f.Value(schema.FromEmail))

	_, ok := f.Get(schema.TMDBAPIKey)
	assert.False(t, ok)

	for key, n := range map[string]int{schema.JWTSecret: 64, schema.EncryptionKey: 32} {
		v := f.Value(key)
		assert.Len(t, v, n, key)
		for _, c := range v {
			assert.Contains(t, crypto.Alphanumeric, string(c))
		}
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.Contains(t, out.String(), "✅ SETUP COMPLETE")
	assert.NotContains(t, out.String(), "Overwrite it?")
}

func TestBuilder_Run_DeclineOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("KEEP=me\n"), 0644))

	for _, answer := range []string{"n", "", "no", "nope"} {
		t.Run(answer, func(t *testing.T) {
			var out bytes.Buffer
			outcome, err := newBuilder(path, answer+"\n", &out).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Declined, outcome)
			assert.Contains(t, out.String(), "Setup cancelled.")

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "KEEP=me\n", string(data))
		})
	}
}

func TestBuilder_Run_AcceptOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("KEEP=me\n"), 0644))

	var out bytes.Buffer
	b := newBuilder(path, script(" YES ", "u", "a", "s", "pk", "sk", "wh", "", "", "", "y", "tmdb", ""), &out)
	b.Generate = func(n int) (string, error) { return strings.Repeat("k", n), nil }

	outcome, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Written, outcome)

	f, err := envfile.Read(path)
	require.NoError(t, err)
	_, ok := f.Get("KEEP")
	assert.False(t, ok)
	assert.Equal(t, "tmdb", f.Value(schema.TMDBAPIKey))
	assert.Equal(t, DefaultAppURL, f.Value(schema.AppURL))
	assert.Equal(t, strings.Repeat("k", 32), f.Value(schema.EncryptionKey))
	_, ok = f.Get(schema.GoogleAnalyticsID)
	assert.False(t, ok)
	_, ok = f.Get(schema.PayPalClientID)
	assert.False(t, ok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestBuilder_Run_Errors(t *testing.T) {
	t.Run("input ends early", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		var out bytes.Buffer
		_, err := newBuilder(path, script("https://abc.supabase.co", "anon"), &out).Run(context.Background())
		assert.ErrorIs(t, err, ErrInputClosed)
		assert.False(t, envfile.Exists(path))
	})

	t.Run("cancelled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		_, err := newBuilder(path, script("x"), &out).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, envfile.Exists(path))
	})

	t.Run("generator fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		var out bytes.Buffer
		b := newBuilder(path, script("u", "a", "s", "pk", "sk", "", "n", "", "", "n"), &out)
		b.Generate = func(int) (string, error) { return "", errors.New("no entropy") }

		_, err := b.Run(context.Background())
		assert.ErrorContains(t, err, "no entropy")
		assert.False(t, envfile.Exists(path))
	})
}

func TestAnswers_Document(t *testing.T) {
	a := &Answers{
		SupabaseURL:          "https://x.supabase.co",
		SupabaseAnonKey:      "anon",
		StripePublishableKey: "pk",
		PayPal:               true,
		PayPalClientSecret:   "pp-secret",
		AppName:              DefaultAppName,
		AppURL:               DefaultAppURL,
		External:             true,
		GoogleAnalyticsID:    "G-123",
		JWTSecret:            "j",
		EncryptionKey:        "e",
	}

	data, err := a.Document(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)).Bytes()
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "# ===========================================\n# WATCHHUB - ENVIRONMENT CONFIGURATION\n# Generated automatically on 2026-01-02 03:04:05 UTC\n"))

	titles := []string{
		"# SUPABASE CONFIGURATION",
		"# STRIPE CONFIGURATION",
		"# PAYPAL CONFIGURATION",
		"# APPLICATION CONFIGURATION",
		"# CONTENT & MEDIA CONFIGURATION",
		"# EXTERNAL SERVICES CONFIGURATION",
		"# DEVELOPMENT CONFIGURATION",
		"# SECURITY CONFIGURATION",
		"# EMAIL CONFIGURATION",
	}
	last := -1
	for _, title := range titles {
		idx := strings.Index(out, title)
		require.Greater(t, idx, last, title)
		last = idx
	}

	assert.Contains(t, out, "VITE_PAYPAL_CLIENT_ID=\nPAYPAL_CLIENT_SECRET=pp-secret\n")
	assert.Contains(t, out, "# ===========================================\nVITE_GOOGLE_ANALYTICS_ID=G-123\n\n")
	assert.Contains(t, out, "VITE_API_URL=http://localhost:5173/api\n")
	assert.True(t, strings.HasSuffix(out, "SMTP_HOST=\nSMTP_PORT=587\nSMTP_USER=\nSMTP_PASSWORD=\nFROM_EMAIL=noreply@watchhub.com\n"))
}

func TestAnswers_Document_OptionalBlocks(t *testing.T) {
	tests := []struct {
		name    string
		answers Answers
		absent  []string
	}{
		{"gates declined", Answers{PayPal: false, PayPalClientID: "pp", External: false, TMDBAPIKey: "x"}, []string{"PAYPAL", "EXTERNAL"}},
		{"gates accepted but empty", Answers{PayPal: true, External: true}, []string{"PAYPAL", "EXTERNAL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.answers.Document(time.Now()).Bytes()
			require.NoError(t, err)
			for _, word := range tt.absent {
				assert.NotContains(t, string(data), word)
			}
		})
	}
}

func TestAnswers_Document_RejectsPaddedValue(t *testing.T) {
	a := &Answers{SupabaseAnonKey: " key ", AppName: DefaultAppName, AppURL: DefaultAppURL}

	_, err := a.Document(time.Now()).Bytes()
	assert.ErrorContains(t, err, schema.SupabaseAnonKey)
}

func TestAnswers_Document_RoundTrip_Property(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	value := gen.OneGenOf(gen.Const(""), gen.Identifier(), gen.AlphaString().Map(func(s string) string {
		return "https://" + s + "/x=y#z"
	}), gen.Identifier().Map(func(s string) string {
		return " " + s + " "
	}))

	properties.Property("every written pair parses back unchanged", prop.ForAll(
		func(url, anon, secret, paypalID string, paypal, external bool) bool {
			padded := false
			for _, v := range []string{url, anon, secret, paypalID} {
				if strings.TrimSpace(v) != v {
					padded = true
				}
			}

			a := &Answers{
				SupabaseURL:     url,
				SupabaseAnonKey: anon,
				StripeSecretKey: secret,
				PayPal:          paypal,
				PayPalClientID:  paypalID,
				External:        external,
				TMDBAPIKey:      anon,
				AppName:         DefaultAppName,
				AppURL:          url,
				JWTSecret:       secret,
				EncryptionKey:   paypalID,
			}
			doc := a.Document(time.Now())
			data, err := doc.Bytes()
			if padded || err != nil {
				return padded && err != nil
			}
			f, err := envfile.Parse(bytes.NewReader(data))
			if err != nil {
				return false
			}

			written := 0
			for _, s := range doc.Sections {
				for _, e := range s.Entries {
					written++
					got, ok := f.Get(e.Key)
					if !ok || got != e.Value {
						return false
					}
				}
			}
			return f.Len() == written
		},
		value, value, value, value, gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestConfirmed(t *testing.T) {
	for _, yes := range []string{"y", "Y", "yes", "YES", " Yes "} {
		assert.True(t, confirmed(yes), yes)
	}
	for _, no := range []string{"", "n", "no", "yep", "1"} {
		assert.False(t, confirmed(no), no)
	}
}
