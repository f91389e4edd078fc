package i18n

import (
	"errors"
	"strings"
)

// ErrTranslationUnavailable is internal only: callers of Translate always
// get usable text back, never an error surfaced to the end user.
var ErrTranslationUnavailable = errors.New("translation unavailable")

// Translator returns display text in a target language, falling back to the
// original text whenever translation is unavailable.
type Translator struct {
	registry *Registry
}

func NewTranslator(registry *Registry) *Translator {
	return &Translator{registry: registry}
}

// Translate returns the text in the target language. English and unknown
// target codes pass the text through unchanged; a known target without a
// stored translation gets the tagged fallback form.
func (t *Translator) Translate(text, target string) string {
	translated, err := t.translate(text, target)
	if err != nil {
		// degrade silently to the original text
		return text
	}
	return translated
}

func (t *Translator) translate(text, target string) (string, error) {
	if target == "" || target == DefaultLanguage {
		return text, nil
	}
	if !t.registry.Exists(target) {
		return "", ErrTranslationUnavailable
	}

	if byText, ok := mockTranslations[target]; ok {
		if translated, ok := byText[text]; ok {
			return translated, nil
		}
	}

	// tagged fallback keeps the demo visibly "translated"
	return "[" + strings.ToUpper(target) + "] " + text, nil
}

// mockTranslations stand in for a real translation provider. Keys match the
// seeded demo request titles.
var mockTranslations = map[string]map[string]string{
	"es": {
		"Need help with grocery shopping":       "Necesito ayuda con las compras",
		"Math tutoring for high school student": "Tutoría de matemáticas para estudiante de secundaria",
		"Furniture donation pickup":             "Recogida de donación de muebles",
		"Computer repair assistance":            "Asistencia para reparación de computadoras",
		"Companion for elderly parent":          "Compañía para padre anciano",
		"Dog walking service needed":            "Se necesita servicio de paseo de perros",
		"Piano lessons for beginner":            "Clases de piano para principiantes",
		"Garden tools to donate":                "Herramientas de jardín para donar",
	},
	"fr": {
		"Need help with grocery shopping":       "Besoin d'aide pour faire les courses",
		"Math tutoring for high school student": "Tutorat en mathématiques pour lycéen",
		"Furniture donation pickup":             "Collecte de don de meubles",
		"Computer repair assistance":            "Assistance pour réparation d'ordinateur",
		"Companion for elderly parent":          "Compagnon pour parent âgé",
		"Dog walking service needed":            "Service de promenade de chien nécessaire",
		"Piano lessons for beginner":            "Cours de piano pour débutant",
		"Garden tools to donate":                "Outils de jardinage à donner",
	},
	"de": {
		"Need help with grocery shopping":       "Hilfe beim Einkaufen benötigt",
		"Math tutoring for high school student": "Mathe-Nachhilfe für Gymnasiasten",
		"Furniture donation pickup":             "Möbelspende abholen",
		"Computer repair assistance":            "Computer-Reparatur-Hilfe",
		"Companion for elderly parent":          "Begleitung für ältere Eltern",
		"Dog walking service needed":            "Hundeausführ-Service benötigt",
		"Piano lessons for beginner":            "Klavierunterricht für Anfänger",
		"Garden tools to donate":                "Gartenwerkzeuge zu spenden",
	},
}
