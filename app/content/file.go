package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const defaultSeparator = " "

// FileDictionary is the on-disk shape of a dictionary file.
type FileDictionary struct {
	Categories []FileCategory `json:"categories" yaml:"categories"`
}

// FileCategory is one category as written in a dictionary file. Strategy
// defaults to template.
type FileCategory struct {
	Key             string               `json:"key" yaml:"key"`
	Title           string               `json:"title" yaml:"title"`
	Description     string               `json:"description" yaml:"description"`
	Strategy        string               `json:"strategy" yaml:"strategy"`
	Slots           map[string][]string  `json:"slots" yaml:"slots"`
	Weights         map[string][]float64 `json:"weights" yaml:"weights"`
	Templates       []string             `json:"templates" yaml:"templates"`
	TemplateWeights []float64            `json:"templateWeights" yaml:"templateWeights"`
	Cultures        []Culture            `json:"cultures" yaml:"cultures"`
	Lists           []string             `json:"lists" yaml:"lists"`
	Fields          []Field              `json:"fields" yaml:"fields"`
	Enhancer        *FileEnhancer        `json:"enhancer" yaml:"enhancer"`
}

type FileEnhancer struct {
	Probability float64  `json:"probability" yaml:"probability"`
	Separator   *string  `json:"separator" yaml:"separator"`
	Fragments   []string `json:"fragments" yaml:"fragments"`
}

// Category converts the file record, resolving its strategy once.
func (f FileCategory) Category() (Category, error) {
	category := Category{
		Key:         f.Key,
		Title:       f.Title,
		Description: f.Description,
		Slots:       f.Slots,
		Weights:     f.Weights,
	}

	kind := StrategyKind(f.Strategy)
	if kind == "" {
		kind = KindTemplate
	}
	if !IsStrategyKind(kind.String()) {
		return Category{}, &ValidationError{Category: f.Key, Field: "strategy",
			Err: fmt.Errorf("%w: unknown strategy %q, must be one of %v", ErrInvalidCategory, f.Strategy, StrategyKinds)}
	}
	switch kind {
	case KindTemplate:
		category.Strategy = TemplateStrategy{Templates: f.Templates, Weights: f.TemplateWeights}
	case KindCulturedName:
		category.Strategy = CulturedNameStrategy{Cultures: f.Cultures}
	case KindFlatList:
		category.Strategy = FlatListStrategy{Slots: f.Lists}
	case KindStructured:
		category.Strategy = StructuredStrategy{Fields: f.Fields}
	}

	if f.Enhancer != nil {
		separator := defaultSeparator
		if f.Enhancer.Separator != nil {
			separator = *f.Enhancer.Separator
		}
		category.Enhancer = &Enhancer{
			Probability: f.Enhancer.Probability,
			Separator:   separator,
			Fragments:   f.Enhancer.Fragments,
		}
	}
	return category, nil
}

// ReadDictionary reads and parses a .json, .yaml or .yml dictionary file.
func ReadDictionary(filePath string) (FileDictionary, error) {
	var dict FileDictionary
	ext := filepath.Ext(filePath)

	content, err := os.ReadFile(filePath) // #nosec G304 -- filePath is controlled by configuration
	if err != nil {
		return dict, fmt.Errorf("read dictionary file: %w", err)
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(content, &dict); err != nil {
			return dict, fmt.Errorf("unmarshal json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &dict); err != nil {
			return dict, fmt.Errorf("unmarshal yaml: %w", err)
		}
	default:
		return dict, fmt.Errorf("unsupported dictionary file format: %s", ext)
	}

	return dict, nil
}

// LoadFile layers the categories of a dictionary file over base. Categories
// with an existing key replace it, new keys are appended. base is not modified.
func LoadFile(base *Catalog, filePath string) (*Catalog, error) {
	dict, err := ReadDictionary(filePath)
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog()
	if base != nil {
		catalog = base.Clone()
	}
	for _, fc := range dict.Categories {
		category, err := fc.Category()
		if err != nil {
			return nil, err
		}
		if err := catalog.Register(category); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}
