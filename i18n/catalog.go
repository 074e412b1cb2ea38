package i18n

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	// ErrFailedToParseCatalog is returned when catalog content is not valid YAML.
	ErrFailedToParseCatalog = errors.New("i18n: failed to parse catalog")
	// ErrEmptyCatalog is returned when a catalog declares no languages.
	ErrEmptyCatalog = errors.New("i18n: catalog has no languages")
	// ErrLanguageNotSupported is returned by Catalog.Translator for unknown languages.
	ErrLanguageNotSupported = errors.New("i18n: language not supported")
)

// Catalog holds message templates loaded from a YAML document shaped as
//
//	en:
//	  gt: "must be greater than %{num}"
//	fr:
//	  gt: "doit être supérieur à %{num}"
//
// Catalogs are read-only after loading.
type Catalog struct {
	langs map[string]map[string]string
}

// LoadCatalog parses a YAML catalog from r.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var data map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, errors.Join(ErrFailedToParseCatalog, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyCatalog
	}
	for lang := range data {
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrFailedToParseCatalog)
		}
	}
	return &Catalog{langs: data}, nil
}

// LoadCatalogFile opens path and parses it with LoadCatalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Languages returns the catalog languages in sorted order.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.langs))
	for l := range c.langs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Translator returns a Translator for lang. Keys missing from the catalog
// fall back to the built-in dictionary of the same language (English when
// there is none).
func (c *Catalog) Translator(lang string) (Translator, error) {
	dict, ok := c.langs[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotSupported, lang)
	}
	return catalogTranslator{dict: dict, fallback: dictTranslator{lang: lang}}, nil
}

type catalogTranslator struct {
	dict     map[string]string
	fallback Translator
}

func (t catalogTranslator) Message(key string, data map[string]any) string {
	if tmpl, ok := t.dict[key]; ok {
		return Render(tmpl, data)
	}
	return t.fallback.Message(key, data)
}
