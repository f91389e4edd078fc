// Package i18n holds the language registry and the translation service.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Language is a display language offered by the application.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	Flag       string `json:"flag"`
}

// DefaultLanguage is assumed for users without a stored preference and for
// content authored without a language tag.
const DefaultLanguage = "en"

// Registry is the set of languages the application can display, loaded once
// at startup.
type Registry struct {
	mu        sync.RWMutex
	languages map[string]Language
	order     []string
}

func NewRegistry(languages []Language) *Registry {
	r := &Registry{languages: make(map[string]Language, len(languages))}
	for _, l := range languages {
		r.Register(l)
	}
	return r
}

// LoadFromFile reads the language list from a JSON config file.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read languages config: %w", err)
	}

	var file struct {
		Languages []Language `json:"languages"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse languages config: %w", err)
	}

	return NewRegistry(file.Languages), nil
}

func (r *Registry) Register(l Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.languages[l.Code]; !ok {
		r.order = append(r.order, l.Code)
	}
	r.languages[l.Code] = l
}

func (r *Registry) Get(code string) (Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.languages[code]
	return l, ok
}

func (r *Registry) Exists(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.languages[code]
	return ok
}

// All returns the languages in registration order.
func (r *Registry) All() []Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Language, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.languages[code])
	}
	return out
}

// DefaultLanguages is the built-in list used when no config file is present.
var DefaultLanguages = []Language{
	{Code: "en", Name: "English", NativeName: "English", Flag: "🇺🇸"},
	{Code: "es", Name: "Spanish", NativeName: "Español", Flag: "🇪🇸"},
	{Code: "fr", Name: "French", NativeName: "Français", Flag: "🇫🇷"},
	{Code: "de", Name: "German", NativeName: "Deutsch", Flag: "🇩🇪"},
	{Code: "it", Name: "Italian", NativeName: "Italiano", Flag: "🇮🇹"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português", Flag: "🇵🇹"},
	{Code: "ru", Name: "Russian", NativeName: "Русский", Flag: "🇷🇺"},
	{Code: "zh", Name: "Chinese", NativeName: "中文", Flag: "🇨🇳"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語", Flag: "🇯🇵"},
	{Code: "ko", Name: "Korean", NativeName: "한국어", Flag: "🇰🇷"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", Flag: "🇸🇦"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी", Flag: "🇮🇳"},
}
