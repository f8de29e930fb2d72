// Package validate classifies the keys of a WatchHub env file against the
// schema catalog.
package validate

import (
	"github.com/watchhub/envctl/pkg/envfile"
	"github.com/watchhub/envctl/pkg/schema"
)

// DisplayLimit is the number of characters of a value shown in reports.
const DisplayLimit = 20

// State is the classification of one catalog key.
type State string

const (
	StateMissing     State = "missing"
	StatePlaceholder State = "placeholder"
	StatePresent     State = "present"
	StateAbsent      State = "absent"
)

// Item is the result for one key. Display holds the truncated value and is
// only set for present keys.
type Item struct {
	Key         string `json:"key" yaml:"key"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
	State       State  `json:"state" yaml:"state"`
	Display     string `json:"display,omitempty" yaml:"display,omitempty"`
}

// CategoryReport groups the items of one schema category.
type CategoryReport struct {
	ID    schema.CategoryID `json:"id" yaml:"id"`
	Title string            `json:"title" yaml:"title"`
	Items []Item            `json:"items" yaml:"items"`
}

// Result is the outcome of a validation run.
type Result struct {
	// AllGood is false when any required key is missing.
	AllGood bool `json:"all_good" yaml:"all_good"`
	// Warnings counts required keys holding placeholder values.
	Warnings   int              `json:"warnings" yaml:"warnings"`
	Categories []CategoryReport `json:"categories" yaml:"categories"`
}

// Missing returns the required keys that have no value.
func (r *Result) Missing() []string {
	var out []string
	for _, c := range r.Categories {
		for _, it := range c.Items {
			if it.State == StateMissing {
				out = append(out, it.Key)
			}
		}
	}
	return out
}

// ExitCode is 1 when a required key is missing, 0 otherwise. Warnings never
// affect it.
func (r *Result) ExitCode() int {
	if r.AllGood {
		return 0
	}
	return 1
}

// Validate evaluates every checked schema entry against f.
func Validate(f *envfile.File) *Result {
	res := &Result{AllGood: true}

	for _, cat := range schema.Categories() {
		entries := schema.CheckedIn(cat.ID)
		if len(entries) == 0 {
			continue
		}

		report := CategoryReport{ID: cat.ID, Title: cat.Title}
		for _, e := range entries {
			it := Classify(e, f.Value(e.Key))
			switch it.State {
			case StateMissing:
				res.AllGood = false
			case StatePlaceholder:
				res.Warnings++
			}
			report.Items = append(report.Items, it)
		}
		res.Categories = append(res.Categories, report)
	}

	return res
}

// Classify assigns one of the four states to an entry with the given value.
// The rules are applied in order: missing required, placeholder required,
// present, absent optional.
func Classify(e schema.Entry, value string) Item {
	it := Item{Key: e.Key, Description: e.Description, Required: e.Required}

	switch {
	case e.Required && value == "":
		it.State = StateMissing
	case e.Required && schema.IsPlaceholder(value) && !schema.PlaceholderExempt(e.Key):
		it.State = StatePlaceholder
	case value != "":
		it.State = StatePresent
		it.Display = Truncate(value, DisplayLimit)
	default:
		it.State = StateAbsent
	}
	return it
}

// Truncate shortens value to n characters, appending "..." when anything was
// cut.
func Truncate(value string, n int) string {
	r := []rune(value)
	if len(r) <= n {
		return value
	}
	return string(r[:n]) + "..."
}
