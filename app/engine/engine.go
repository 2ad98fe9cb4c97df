// Package engine composes text for a category: it resolves the category's
// strategy, interpolates templates and applies the enhancer.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"promptgen.arpa/app/content"
	"promptgen.arpa/tools/random"
)

var ErrUnknownCategory = errors.New("unknown category")

type Engine struct {
	log     *zap.Logger
	catalog atomic.Pointer[content.Catalog]
	rnd     *random.Random
}

func NewEngine(log *zap.Logger, catalog *content.Catalog, rnd *random.Random) *Engine {
	e := &Engine{
		log: log,
		rnd: rnd,
	}
	e.Swap(catalog)
	return e
}

// Swap replaces the catalog used by subsequent compositions.
func (e *Engine) Swap(catalog *content.Catalog) {
	for _, category := range catalog.Categories() {
		if missing := category.UnresolvedSlots(); len(missing) > 0 {
			e.log.Debug("Category references slots without values, placeholders pass through.",
				zap.String("category", category.Key),
				zap.Strings("slots", missing))
		}
	}
	e.catalog.Store(catalog)
	e.log.Debug("Engine catalog loaded.", zap.Strings("categories", catalog.Keys()))
}

func (e *Engine) Catalog() *content.Catalog {
	return e.catalog.Load()
}

// Categories lists the registered categories in registration order.
func (e *Engine) Categories() []*content.Category {
	return e.catalog.Load().Categories()
}

// Category returns the registered category or ErrUnknownCategory.
func (e *Engine) Category(key string) (*content.Category, error) {
	category, ok := e.catalog.Load().Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	return category, nil
}

// Compose produces one freshly drawn string for the category.
func (e *Engine) Compose(key string) (string, error) {
	category, err := e.Category(key)
	if err != nil {
		return "", err
	}

	text, err := compose(category, e.rnd)
	if err != nil {
		return "", fmt.Errorf("compose %s: %w", key, err)
	}
	return Enhance(text, category.Enhancer, e.rnd), nil
}

func compose(c *content.Category, rnd *random.Random) (string, error) {
	switch s := c.Strategy.(type) {
	case content.TemplateStrategy:
		tmpl, err := random.Weighted(rnd, s.Templates, s.Weights)
		if err != nil {
			return "", err
		}
		return Interpolate(tmpl, c.Slots, c.Weights, rnd)

	case content.CulturedNameStrategy:
		culture, err := random.Pick(rnd, s.Cultures)
		if err != nil {
			return "", err
		}
		first, err := random.Pick(rnd, culture.First)
		if err != nil {
			return "", err
		}
		last, err := random.Pick(rnd, culture.Last)
		if err != nil {
			return "", err
		}
		return first + " " + last, nil

	case content.FlatListStrategy:
		var union []string
		for _, name := range s.Slots {
			union = append(union, c.Slots[name]...)
		}
		return random.Pick(rnd, union)

	case content.StructuredStrategy:
		lines := make([]string, 0, len(s.Fields))
		for _, field := range s.Fields {
			value, err := Interpolate(field.Template, c.Slots, c.Weights, rnd)
			if err != nil {
				return "", err
			}
			lines = append(lines, field.Label+": "+value)
		}
		return strings.Join(lines, "\n"), nil

	default:
		return "", fmt.Errorf("unsupported strategy %T", c.Strategy)
	}
}
