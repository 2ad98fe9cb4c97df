package engine

import (
	"fmt"

	"promptgen.arpa/app/content"
	"promptgen.arpa/tools/random"
)

// Interpolate replaces every {slot} in tmpl with an independent draw from
// that slot. Unknown or empty slots are left verbatim. Drawn values are not
// interpolated again. Weights that cannot describe a distribution fail with
// random.ErrInvalidInput.
func Interpolate(tmpl string, slots map[string][]string, weights map[string][]float64, rnd *random.Random) (string, error) {
	var firstErr error
	text := content.Placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := match[1 : len(match)-1]
		values, ok := slots[name]
		if !ok || len(values) == 0 {
			return match
		}
		value, err := random.Weighted(rnd, values, weights[name])
		if err != nil {
			firstErr = fmt.Errorf("slot %s: %w", name, err)
			return match
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return text, nil
}

// Enhance appends a random fragment with the enhancer's probability. A nil
// enhancer leaves text unchanged.
func Enhance(text string, enhancer *content.Enhancer, rnd *random.Random) string {
	if enhancer == nil || len(enhancer.Fragments) == 0 {
		return text
	}
	if !rnd.Bool(enhancer.Probability) {
		return text
	}
	fragment, err := random.Pick(rnd, enhancer.Fragments)
	if err != nil {
		return text
	}
	return text + enhancer.Separator + fragment
}
