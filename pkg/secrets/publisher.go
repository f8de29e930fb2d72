package secrets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/watchhub/envctl/pkg/cli/format"
	"github.com/watchhub/envctl/pkg/envfile"
	"github.com/watchhub/envctl/pkg/log"
	"github.com/watchhub/envctl/pkg/schema"
)

// Result is what happened to one secret.
type Result string

const (
	ResultSet     Result = "set"
	ResultSkipped Result = "skipped"
	ResultError   Result = "error"
	// ResultPlanned marks a secret that a dry run would have set.
	ResultPlanned Result = "planned"
)

// Record is a secret derived from the env file.
type Record struct {
	Name   string
	Source string
	Value  string
}

// Records maps the env file onto the published secrets, in push order.
func Records(f *envfile.File) []Record {
	entries := schema.PublishedEntries()
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, Record{Name: e.SecretName, Source: e.Key, Value: f.Value(e.Key)})
	}
	return out
}

// Outcome is the attempt result for one secret.
type Outcome struct {
	Name   string
	Source string
	Result Result
	Err    error
}

// Report lists one outcome per published secret.
type Report struct {
	RunID            string
	Store            string
	FunctionsEnvPath string
	// FunctionsEnvKeys are the keys written to the functions env file.
	FunctionsEnvKeys []string
	Outcomes         []Outcome
}

// Count returns the number of outcomes with the given result.
func (r *Report) Count(result Result) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Result == result {
			n++
		}
	}
	return n
}

// ExitCode is 1 when any push failed.
func (r *Report) ExitCode() int {
	if r.Count(ResultError) > 0 {
		return 1
	}
	return 0
}

// Publisher runs the publish pipeline: probe the store, load the env file,
// check the mandatory keys, write the functions env file and push every
// secret.
type Publisher struct {
	Store            Store
	EnvPath          string
	FunctionsEnvPath string
	Printer          *format.Printer

	// DryRun probes and validates but writes and pushes nothing.
	DryRun bool
	// Now stamps the functions env file. Defaults to time.Now.
	Now func() time.Time
}

// Run executes the pipeline. Errors wrapping ErrStoreUnavailable,
// envfile.ErrNotFound or ErrIncompleteConfig have already been explained to
// the operator. Failed pushes are not errors; they are recorded in the
// report.
func (p *Publisher) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Store: p.Store.Name(), FunctionsEnvPath: p.FunctionsEnvPath}
	logger := log.FromContext(ctx).WithComponent("secrets").With(
		log.Str("run_id", report.RunID),
		log.Str("store", report.Store),
	)
	out := p.Printer

	out.Line(format.Header, "🔐 SECRETS PUBLISHER (%s)", report.Store)
	out.Rule(format.Header, "═", 50)

	if err := p.Store.Probe(ctx); err != nil {
		logger.Error("Store probe failed", log.Err(err))
		out.Line(format.Failure, "❌ %s is not available", report.Store)
		if g, ok := p.Store.(Guide); ok {
			for _, line := range g.Guidance() {
				out.Line(format.Warning, "💡 %s", line)
			}
		}
		if !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return report, err
	}

	f, err := envfile.Read(p.EnvPath)
	if err != nil {
		if errors.Is(err, envfile.ErrNotFound) {
			out.Line(format.Failure, "❌ %s not found", filepath.Base(p.EnvPath))
			out.Line(format.Warning, "💡 Run: envctl setup first")
		}
		return report, err
	}

	var missing []string
	for _, key := range schema.MandatoryForPublish() {
		if f.Value(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		out.Line(format.Failure, "❌ Supabase configuration incomplete: %s", strings.Join(missing, ", "))
		out.Line(format.Warning, "💡 Run: envctl setup first")
		return report, fmt.Errorf("%w: missing %s", ErrIncompleteConfig, strings.Join(missing, ", "))
	}

	records := Records(f)

	if err := p.writeFunctionsEnv(records, report, logger); err != nil {
		return report, err
	}

	out.Blank()
	out.Line(format.Header, "🔐 SETTING SECRETS")
	out.Blank()

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Outcomes = append(report.Outcomes, p.push(ctx, rec, logger))
	}

	p.summarize(report, logger)
	logger.Info("Publish finished",
		log.Int("set", report.Count(ResultSet)),
		log.Int("skipped", report.Count(ResultSkipped)),
		log.Int("errors", report.Count(ResultError)),
	)
	return report, nil
}

func (p *Publisher) writeFunctionsEnv(records []Record, report *Report, logger log.Logger) error {
	var entries []envfile.Entry
	for _, rec := range records {
		e, _ := schema.Lookup(rec.Source)
		if !e.FunctionsEnv {
			continue
		}
		if !schema.Publishable(rec.Value) {
			logger.Debug("Omitting key from functions env", log.Str("key", rec.Name))
			continue
		}
		entries = append(entries, envfile.Entry{Key: rec.Name, Value: rec.Value})
		report.FunctionsEnvKeys = append(report.FunctionsEnvKeys, rec.Name)
	}

	if p.DryRun {
		p.Printer.Line(format.Muted, "📁 Would write %s with %d keys", p.FunctionsEnvPath, len(entries))
		return nil
	}

	doc := &envfile.Document{Header: []string{
		"Supabase Edge Functions configuration",
		"Generated automatically on " + p.now().Format("2006-01-02 15:04:05 MST"),
	}}
	doc.Add("", entries...)
	if err := doc.WriteFile(p.FunctionsEnvPath); err != nil {
		return err
	}
	p.Printer.Line(format.Success, "📁 %s created", p.FunctionsEnvPath)
	return nil
}

func (p *Publisher) push(ctx context.Context, rec Record, logger log.Logger) Outcome {
	out := p.Printer
	o := Outcome{Name: rec.Name, Source: rec.Source}

	switch {
	case !schema.Publishable(rec.Value):
		o.Result = ResultSkipped
		out.Line(format.Warning, "⏭️  Skipping %s (not set)", rec.Name)
	case p.DryRun:
		o.Result = ResultPlanned
		out.Line(format.Info, "Would set %s", rec.Name)
	default:
		out.Line(format.Info, "Setting %s...", rec.Name)
		start := time.Now()
		err := p.Store.Set(ctx, rec.Name, rec.Value)
		logger.Debug("Store call finished", log.Str("name", rec.Name), log.Duration("elapsed", time.Since(start)))
		if err != nil {
			o.Result = ResultError
			o.Err = err
			out.Line(format.Failure, "❌ Error setting %s", rec.Name)
			logger.Error("Failed to set secret", log.Str("name", rec.Name), log.Err(err))
			break
		}
		o.Result = ResultSet
		out.Line(format.Success, "✅ %s set", rec.Name)
	}
	return o
}

func (p *Publisher) summarize(report *Report, logger log.Logger) {
	out := p.Printer

	out.Blank()
	out.Line(format.Header, "📊 SUMMARY:")
	if p.DryRun {
		out.Line(format.Info, "📝 Secrets that would be set: %d", report.Count(ResultPlanned))
	} else {
		out.Line(format.Success, "✅ Secrets set: %d", report.Count(ResultSet))
	}
	out.Line(format.Warning, "⏭️  Secrets skipped: %d", report.Count(ResultSkipped))
	if n := report.Count(ResultError); n > 0 {
		out.Line(format.Failure, "❌ Errors: %d", n)
	}

	rows := [][]string{{"SECRET", "SOURCE", "RESULT"}}
	for _, o := range report.Outcomes {
		rows = append(rows, []string{o.Name, o.Source, string(o.Result)})
	}
	out.Blank()
	if err := out.Table(rows); err != nil {
		logger.Warn("Failed to render summary table", log.Err(err))
	}

	if p.DryRun {
		return
	}
	out.Blank()
	out.Line(format.Success, "🎉 PUBLISH COMPLETE")
	out.Blank()
	out.Line(format.Warning, "📋 NEXT STEPS:")
	out.Line(format.Plain, "1. Run: npm run deploy:functions")
	out.Line(format.Plain, "2. Check the functions in the Supabase dashboard")
	out.Line(format.Plain, "3. Configure the Stripe/PayPal webhooks if needed")
}

func (p *Publisher) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
