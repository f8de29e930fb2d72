package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/watchhub/envctl/pkg/cli/format"
	"github.com/watchhub/envctl/pkg/schema"
	"gopkg.in/yaml.v3"
)

const ruleWidth = 50

var categoryStyles = map[schema.CategoryID]format.Style{
	schema.CategorySupabase:    format.Info,
	schema.CategoryStripe:      format.Info,
	schema.CategoryPayPal:      format.Accent,
	schema.CategoryApplication: format.Success,
	schema.CategorySecurity:    format.Failure,
}

// WriteBanner prints the title shown before anything else.
func WriteBanner(p *format.Printer) {
	p.Line(format.Header, "🔍 WATCHHUB CONFIGURATION CHECKER")
	p.Rule(format.Header, "═", ruleWidth)
}

// WriteMissingFile prints the guidance shown when the env file is absent.
func WriteMissingFile(p *format.Printer, path string) {
	p.Line(format.Failure, "❌ %s not found", path)
	p.Line(format.Warning, "💡 Run: envctl setup to create the configuration")
}

// WriteText prints the categorized report followed by the recommendations.
func WriteText(p *format.Printer, res *Result) {
	p.Blank()
	p.Line(format.Header, "🔍 CHECKING WATCHHUB CONFIGURATION")

	for _, c := range res.Categories {
		p.Blank()
		p.Line(categoryStyles[c.ID], "📁 %s", c.Title)
		p.Rule(format.Plain, "─", ruleWidth)

		for _, it := range c.Items {
			switch it.State {
			case StateMissing:
				p.Status(format.Failure, "❌ "+it.Key, it.Description)
			case StatePlaceholder:
				p.Status(format.Warning, "⚠️  "+it.Key, it.Description+" (placeholder value)")
			case StatePresent:
				p.Status(format.Success, "✅ "+it.Key, fmt.Sprintf("%s (%s)", it.Description, it.Display))
			default:
				p.Status(format.Warning, "➖ "+it.Key, it.Description+" (optional, not set)")
			}
		}
	}

	writeRecommendations(p, res)
}

func writeRecommendations(p *format.Printer, res *Result) {
	p.Blank()
	p.Line(format.Header, "📋 CONFIGURATION SUMMARY")
	p.Blank()

	switch {
	case res.AllGood && res.Warnings == 0:
		p.Line(format.Success, "🎉 Configuration complete and ready!")
		p.Blank()
		p.Line(format.Info, "🚀 Available commands:")
		p.Bullets(format.Plain,
			"npm run dev - Start development",
			"npm run build - Build for production",
			"envctl secrets - Publish Edge Function secrets",
		)
	case !res.AllGood:
		p.Line(format.Failure, "❌ Configuration incomplete")
		p.Line(format.Failure, "   Missing: %s", strings.Join(res.Missing(), ", "))
		p.Blank()
		p.Line(format.Warning, "💡 Recommended actions:")
		p.Bullets(format.Plain,
			"Run: envctl setup to configure automatically",
			"Or edit the .env file manually",
		)
	default:
		p.Line(format.Warning, "⚠️  Basic configuration complete with %d warnings", res.Warnings)
		p.Blank()
		p.Line(format.Warning, "💡 Recommendations:")
		p.Bullets(format.Plain,
			"Replace placeholder values with real settings",
			"Check that external service keys are valid",
		)
	}

	p.Blank()
	p.Line(format.Info, "📚 Useful resources:")
	p.Bullets(format.Plain,
		"Supabase Dashboard: https://app.supabase.com",
		"Stripe Dashboard: https://dashboard.stripe.com",
		"PayPal Developer: https://developer.paypal.com",
	)
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, res *Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteYAML writes the result as YAML.
func WriteYAML(w io.Writer, res *Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to marshal result to YAML: %w", err)
	}
	return enc.Close()
}
