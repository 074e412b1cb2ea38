package i18n

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for predicate and guard keys.
// data carries the bound arguments rendered into %{name} placeholders.
type Translator interface {
	Message(key string, data map[string]any) string
}

// Message keys that are not predicate names.
const (
	KeyMissing   = "key"
	KeyFilled    = "filled"
	KeySizeRange = "size.range"
)

var english = map[string]string{
	KeyMissing:      "is missing",
	KeyFilled:       "must be filled",
	"empty":         "must be empty",
	"none":          "cannot be defined",
	"gt":            "must be greater than %{num}",
	"gteq":          "must be greater than or equal to %{num}",
	"lt":            "must be less than %{num}",
	"lteq":          "must be less than or equal to %{num}",
	"eql":           "must be equal to %{left}",
	"not_eql":       "must not be equal to %{left}",
	"max_size":      "size cannot be greater than %{num}",
	"min_size":      "size cannot be less than %{num}",
	"size":          "size must be %{size}",
	KeySizeRange:    "size must be within %{left} - %{right}",
	"format":        "is in invalid format",
	"included_in":   "must be one of: %{list}",
	"excluded_from": "must not be one of: %{list}",
	"int":           "must be an integer",
	"float":         "must be a float",
	"decimal":       "must be a decimal",
	"number":        "must be a number",
	"str":           "must be a string",
	"bool":          "must be boolean",
	"array":         "must be an array",
	"hash":          "must be a hash",
	"odd":           "must be odd",
	"even":          "must be even",
	"true":          "must be true",
	"false":         "must be false",
	"satisfies":     "must satisfy %{expr}",
}

var japanese = map[string]string{
	KeyMissing:      "がありません",
	KeyFilled:       "を入力してください",
	"empty":         "は空でなければなりません",
	"none":          "は定義できません",
	"gt":            "は%{num}より大きくなければなりません",
	"gteq":          "は%{num}以上でなければなりません",
	"lt":            "は%{num}より小さくなければなりません",
	"lteq":          "は%{num}以下でなければなりません",
	"eql":           "は%{left}と等しくなければなりません",
	"not_eql":       "は%{left}と等しくてはいけません",
	"max_size":      "のサイズは%{num}以下でなければなりません",
	"min_size":      "のサイズは%{num}以上でなければなりません",
	"size":          "のサイズは%{size}でなければなりません",
	KeySizeRange:    "のサイズは%{left}から%{right}の範囲でなければなりません",
	"format":        "の形式が不正です",
	"included_in":   "は次のいずれかでなければなりません: %{list}",
	"excluded_from": "は次のいずれでもあってはいけません: %{list}",
	"int":           "は整数でなければなりません",
	"float":         "は浮動小数点数でなければなりません",
	"decimal":       "は10進数でなければなりません",
	"number":        "は数値でなければなりません",
	"str":           "は文字列でなければなりません",
	"bool":          "は真偽値でなければなりません",
	"array":         "は配列でなければなりません",
	"hash":          "はハッシュでなければなりません",
	"odd":           "は奇数でなければなりません",
	"even":          "は偶数でなければなりません",
	"true":          "はtrueでなければなりません",
	"false":         "はfalseでなければなりません",
	"satisfies":     "は%{expr}を満たさなければなりません",
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(key string, data map[string]any) string {
	dict := english
	if t.lang == "ja" {
		dict = japanese
	}
	tmpl, ok := dict[key]
	if !ok {
		return key
	}
	return Render(tmpl, data)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Languages lists the built-in dictionary languages.
func Languages() []string { return []string{"en", "ja"} }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// Default returns the built-in dictionary translator for lang.
func Default(lang string) Translator { return dictTranslator{lang: lang} }

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]any) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(key, data)
}

// Render substitutes %{name} placeholders in tmpl with values from data.
// Unknown placeholders are left untouched.
func Render(tmpl string, data map[string]any) string {
	if len(data) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	b := &strings.Builder{}
	for {
		start := strings.Index(tmpl, "%{")
		if start < 0 {
			b.WriteString(tmpl)
			break
		}
		end := strings.IndexByte(tmpl[start:], '}')
		if end < 0 {
			b.WriteString(tmpl)
			break
		}
		end += start
		name := tmpl[start+2 : end]
		b.WriteString(tmpl[:start])
		if v, ok := data[name]; ok {
			b.WriteString(FormatValue(v))
		} else {
			b.WriteString(tmpl[start : end+1])
		}
		tmpl = tmpl[end+1:]
	}
	return b.String()
}

// FormatValue renders an argument for a message. Lists are joined with ", ".
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, ", ")
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// Keys lists the keys of the built-in English dictionary in sorted order.
func Keys() []string {
	out := make([]string, 0, len(english))
	for k := range english {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
