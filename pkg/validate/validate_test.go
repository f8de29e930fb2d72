package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchhub/envctl/pkg/cli/format"
	"github.com/watchhub/envctl/pkg/envfile"
	"github.com/watchhub/envctl/pkg/schema"
	"gopkg.in/yaml.v3"
)

var complete = map[string]string{
	schema.SupabaseURL:            "https://x.supabase.co",
	schema.SupabaseAnonKey:        "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9",
	schema.SupabaseServiceRoleKey: "service-role",
	schema.StripePublishableKey:   "pk_test_abc",
	schema.StripeSecretKey:        "sk_live_abc123",
	schema.JWTSecret:              "jwtjwtjwt",
	schema.EncryptionKey:          "enc",
}

func parse(t *testing.T, vars map[string]string) *envfile.File {
	t.Helper()
	var b strings.Builder
	for k, v := range vars {
		fmt.Fprintf(&b, "%s=%s\n", k, v)
	}
	f, err := envfile.Parse(strings.NewReader(b.String()))
	require.NoError(t, err)
	return f
}

func with(base map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = value
	return out
}

func itemFor(t *testing.T, res *Result, key string) Item {
	t.Helper()
	for _, c := range res.Categories {
		for _, it := range c.Items {
			if it.Key == key {
				return it
			}
		}
	}
	t.Fatalf("no item for %s", key)
	return Item{}
}

func TestValidate_Complete(t *testing.T) {
	res := Validate(parse(t, complete))

	assert.True(t, res.AllGood)
	assert.Equal(t, 0, res.Warnings)
	assert.Equal(t, 0, res.ExitCode())
	assert.Empty(t, res.Missing())

	require.Len(t, res.Categories, 5)
	titles := make([]string, 0, len(res.Categories))
	for _, c := range res.Categories {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"Supabase (required)", "Stripe (required)", "PayPal (optional)", "Application", "Security"}, titles)

	assert.Equal(t, StateAbsent, itemFor(t, res, schema.PayPalClientID).State)
	assert.Equal(t, StateAbsent, itemFor(t, res, schema.StripeWebhookSecret).State)

	anon := itemFor(t, res, schema.SupabaseAnonKey)
	assert.Equal(t, StatePresent, anon.State)
	assert.Equal(t, "eyJhbGciOiJIUzI1NiIs...", anon.Display)
}

func TestValidate_MissingServiceRoleKey(t *testing.T) {
	f, err := envfile.Parse(strings.NewReader("VITE_SUPABASE_URL=https://x.supabase.co\nSUPABASE_SERVICE_ROLE_KEY=\n"))
	require.NoError(t, err)

	res := Validate(f)

	assert.Equal(t, StatePresent, itemFor(t, res, schema.SupabaseURL).State)
	assert.Equal(t, StateMissing, itemFor(t, res, schema.SupabaseServiceRoleKey).State)
	assert.False(t, res.AllGood)
	assert.Equal(t, 1, res.ExitCode())
}

func TestValidate_PlaceholdersWarnOnly(t *testing.T) {
	vars := with(complete, schema.StripeSecretKey, "your_actual_key_123")
	vars = with(vars, schema.JWTSecret, "YOUR_JWT")
	vars = with(vars, schema.NodeEnv, "development")
	vars = with(vars, schema.PayPalClientID, "your_paypal")

	res := Validate(parse(t, vars))

	assert.True(t, res.AllGood)
	assert.Equal(t, 2, res.Warnings)
	assert.Equal(t, 0, res.ExitCode())
	assert.Equal(t, StatePlaceholder, itemFor(t, res, schema.StripeSecretKey).State)
	// Optional keys are never flagged as placeholders.
	assert.Equal(t, StatePresent, itemFor(t, res, schema.PayPalClientID).State)
	assert.Equal(t, StatePresent, itemFor(t, res, schema.NodeEnv).State)
}

func TestClassify(t *testing.T) {
	required := schema.Entry{Key: "REQ", Required: true}
	exempt := schema.Entry{Key: schema.NodeEnv, Required: true}
	optional := schema.Entry{Key: "OPT"}

	tests := []struct {
		name  string
		entry schema.Entry
		value string
		want  State
	}{
		{"required empty", required, "", StateMissing},
		{"required placeholder", required, "your_actual_key_123", StatePlaceholder},
		{"required sentinel", required, "debug", StatePlaceholder},
		{"required real", required, "sk_live_abc123", StatePresent},
		{"exempt sentinel", exempt, "development", StatePresent},
		{"optional empty", optional, "", StateAbsent},
		{"optional placeholder", optional, "your_x", StatePresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.entry, tt.value).State)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 20))
	assert.Equal(t, "12345678901234567890", Truncate("12345678901234567890", 20))
	assert.Equal(t, "12345678901234567890...", Truncate("123456789012345678901", 20))
	assert.Equal(t, "ñññ...", Truncate("ññññ", 3))
}

func TestValidate_Properties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	realValue := gen.Identifier().SuchThat(func(v string) bool {
		return !schema.IsPlaceholder(v)
	})

	properties.Property("complete configuration passes without warnings", prop.ForAll(
		func(v string) bool {
			vars := make(map[string]string)
			for _, e := range schema.Entries() {
				if e.Required {
					vars[e.Key] = v
				}
			}
			res := Validate(parse(t, vars))
			return res.AllGood && res.Warnings == 0 && res.ExitCode() == 0
		},
		realValue,
	))

	required := make([]string, 0)
	for _, e := range schema.Entries() {
		if e.Required {
			required = append(required, e.Key)
		}
	}

	properties.Property("any missing required key fails", prop.ForAll(
		func(idx int, other string) bool {
			vars := make(map[string]string)
			for _, e := range schema.Entries() {
				vars[e.Key] = other
			}
			vars[required[idx]] = ""
			return Validate(parse(t, vars)).ExitCode() != 0
		},
		gen.IntRange(0, len(required)-1),
		gen.AlphaString(),
	))

	properties.Property("required values containing a marker are placeholders", prop.ForAll(
		func(prefix, suffix string, upper bool) bool {
			marker := "your_"
			if upper {
				marker = "YOUR_"
			}
			e, _ := schema.Lookup(schema.StripeSecretKey)
			return Classify(e, prefix+marker+suffix).State == StatePlaceholder
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestWriteText(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want []string
	}{
		{
			name: "ready",
			vars: complete,
			want: []string{"🎉 Configuration complete and ready!", "✅ VITE_SUPABASE_URL - Supabase project URL (https://x.supabase.c...)", "➖ VITE_PAYPAL_CLIENT_ID"},
		},
		{
			name: "incomplete",
			vars: with(complete, schema.JWTSecret, ""),
			want: []string{"❌ Configuration incomplete", "❌ JWT_SECRET - JWT signing secret", "Missing: JWT_SECRET", "envctl setup"},
		},
		{
			name: "warnings",
			vars: with(complete, schema.StripeSecretKey, "your_key"),
			want: []string{"Basic configuration complete with 1 warnings", "⚠️  STRIPE_SECRET_KEY - Stripe secret key (placeholder value)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteText(format.NewPrinter(&buf, false), Validate(parse(t, tt.vars)))

			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			assert.Contains(t, out, "📚 Useful resources:")
			assert.NotContains(t, out, "\x1b[")
		})
	}
}

func TestWriteStructured(t *testing.T) {
	res := Validate(parse(t, with(complete, schema.StripeSecretKey, "your_key")))

	var jsonBuf bytes.Buffer
	require.NoError(t, WriteJSON(&jsonBuf, res))
	var fromJSON Result
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	assert.Equal(t, *res, fromJSON)

	var yamlBuf bytes.Buffer
	require.NoError(t, WriteYAML(&yamlBuf, res))
	var fromYAML Result
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	assert.Equal(t, *res, fromYAML)
	assert.Contains(t, yamlBuf.String(), "state: placeholder")
}
