// Package content holds the word pools, templates and generation strategies
// that describe every prompt generator category.
package content

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"promptgen.arpa/tools/random"
)

// Placeholder matches a {slotName} reference inside a template.
var Placeholder = regexp.MustCompile(`\{(\w+)\}`)

var ErrInvalidCategory = errors.New("invalid category")

// ValidationError describes the part of a category that failed validation.
type ValidationError struct {
	Category string
	Field    string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("category %q: %s: %v", e.Category, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type StrategyKind string

const (
	KindTemplate     StrategyKind = "template"
	KindCulturedName StrategyKind = "cultured-name"
	KindFlatList     StrategyKind = "flat-list"
	KindStructured   StrategyKind = "structured"
)

func (k StrategyKind) String() string {
	return string(k)
}

var StrategyKinds = []StrategyKind{KindTemplate, KindCulturedName, KindFlatList, KindStructured}

func IsStrategyKind(s string) bool {
	return slices.Contains(StrategyKinds, StrategyKind(s))
}

// Strategy is the closed set of ways a category composes its text. It is
// chosen once when the category is registered.
type Strategy interface {
	Kind() StrategyKind
	validate(c *Category) error
}

// TemplateStrategy picks one of Templates and fills its placeholders.
type TemplateStrategy struct {
	Templates []string
	Weights   []float64 // optional, parallel to Templates
}

func (TemplateStrategy) Kind() StrategyKind { return KindTemplate }

func (s TemplateStrategy) validate(c *Category) error {
	if len(s.Templates) == 0 {
		return errors.New("no templates")
	}
	if len(s.Weights) == 0 {
		return nil
	}
	if len(s.Weights) != len(s.Templates) {
		return fmt.Errorf("%d template weights for %d templates", len(s.Weights), len(s.Templates))
	}
	if _, err := random.TotalWeight(s.Weights); err != nil {
		return fmt.Errorf("template weights: %w", err)
	}
	return nil
}

// Culture groups the first and last names of one naming tradition.
type Culture struct {
	Name  string   `json:"name" yaml:"name"`
	First []string `json:"first" yaml:"first"`
	Last  []string `json:"last" yaml:"last"`
}

// CulturedNameStrategy picks a culture, then a first and last name from it.
type CulturedNameStrategy struct {
	Cultures []Culture
}

func (CulturedNameStrategy) Kind() StrategyKind { return KindCulturedName }

func (s CulturedNameStrategy) validate(c *Category) error {
	if len(s.Cultures) == 0 {
		return errors.New("no cultures")
	}
	for _, culture := range s.Cultures {
		if len(culture.First) == 0 || len(culture.Last) == 0 {
			return fmt.Errorf("culture %q needs first and last names", culture.Name)
		}
	}
	return nil
}

// FlatListStrategy picks directly from the union of the named slot lists.
type FlatListStrategy struct {
	Slots []string
}

func (FlatListStrategy) Kind() StrategyKind { return KindFlatList }

func (s FlatListStrategy) validate(c *Category) error {
	if len(s.Slots) == 0 {
		return errors.New("no lists")
	}
	for _, name := range s.Slots {
		if _, ok := c.Slots[name]; !ok {
			return fmt.Errorf("list %q is not a slot", name)
		}
	}
	return nil
}

// Field is one labeled line of a structured generator.
type Field struct {
	Label    string `json:"label" yaml:"label"`
	Template string `json:"template" yaml:"template"`
}

// StructuredStrategy renders a fixed ordered set of labeled fields, one per line.
type StructuredStrategy struct {
	Fields []Field
}

func (StructuredStrategy) Kind() StrategyKind { return KindStructured }

func (s StructuredStrategy) validate(c *Category) error {
	if len(s.Fields) == 0 {
		return errors.New("no fields")
	}
	for i, f := range s.Fields {
		if f.Label == "" {
			return fmt.Errorf("field %d has no label", i)
		}
	}
	return nil
}

// Enhancer appends a random bonus fragment with the configured probability.
type Enhancer struct {
	Probability float64
	Separator   string
	Fragments   []string
}

// Category is a named generator: its pools, strategy and optional enhancer.
type Category struct {
	Key         string
	Title       string
	Description string
	Slots       map[string][]string
	Weights     map[string][]float64 // optional, parallel to Slots entries
	Strategy    Strategy
	Enhancer    *Enhancer
}

// Validate checks the data-integrity preconditions the engine relies on.
func (c *Category) Validate() error {
	if c.Key == "" {
		return &ValidationError{Category: c.Key, Field: "key", Err: ErrInvalidCategory}
	}
	for name, values := range c.Slots {
		if len(values) == 0 {
			return &ValidationError{Category: c.Key, Field: "slots." + name, Err: errors.New("empty slot")}
		}
	}
	for name, weights := range c.Weights {
		values, ok := c.Slots[name]
		if !ok {
			return &ValidationError{Category: c.Key, Field: "weights." + name, Err: errors.New("weights for unknown slot")}
		}
		if len(weights) != len(values) {
			return &ValidationError{Category: c.Key, Field: "weights." + name,
				Err: fmt.Errorf("%d weights for %d values", len(weights), len(values))}
		}
		if _, err := random.TotalWeight(weights); err != nil {
			return &ValidationError{Category: c.Key, Field: "weights." + name, Err: err}
		}
	}
	if c.Strategy == nil {
		return &ValidationError{Category: c.Key, Field: "strategy", Err: errors.New("no strategy")}
	}
	if err := c.Strategy.validate(c); err != nil {
		return &ValidationError{Category: c.Key, Field: c.Strategy.Kind().String(), Err: err}
	}
	if e := c.Enhancer; e != nil {
		if e.Probability < 0 || e.Probability > 1 {
			return &ValidationError{Category: c.Key, Field: "enhancer.probability",
				Err: fmt.Errorf("%v outside [0, 1]", e.Probability)}
		}
		if len(e.Fragments) == 0 {
			return &ValidationError{Category: c.Key, Field: "enhancer.fragments", Err: errors.New("no fragments")}
		}
	}
	return nil
}

// UnresolvedSlots lists placeholders used by the category's templates that
// have no slot. They pass through verbatim when generating.
func (c *Category) UnresolvedSlots() []string {
	var templates []string
	switch s := c.Strategy.(type) {
	case TemplateStrategy:
		templates = s.Templates
	case StructuredStrategy:
		for _, f := range s.Fields {
			templates = append(templates, f.Template)
		}
	}

	var missing []string
	for _, tmpl := range templates {
		for _, m := range Placeholder.FindAllStringSubmatch(tmpl, -1) {
			if _, ok := c.Slots[m[1]]; !ok && !slices.Contains(missing, m[1]) {
				missing = append(missing, m[1])
			}
		}
	}
	return missing
}
