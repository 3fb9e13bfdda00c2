package prompt

import (
	"sort"
	"strings"
)

// DefaultLanguage is used whenever a requested language has no instruction.
const DefaultLanguage = "english"

// instructions maps a language key to the summary instruction written in that language.
// Adding a language is a data change here; nothing else needs to move.
var instructions = map[string]string{
	"english": "Provide a comprehensive, continuous, and detailed narrative summary in English. Organize the content into distinct paragraphs, ensuring smooth transitions between topics.",
	"kannada": "ಕನ್ನಡದಲ್ಲಿ ಸಮಗ್ರ, ನಿರಂತರ ಮತ್ತು ವಿವರವಾದ ನಿರೂಪಣಾ ಸಾರಾಂಶವನ್ನು ನೀಡಿ. ವಿಷಯಗಳ ನಡುವೆ ಸುಗಮ ಪರಿವರ್ತನೆಗಳನ್ನು ಖಾತ್ರಿಪಡಿಸಿಕೊಂಡು, ವಿಷಯವನ್ನು ವಿಭಿನ್ನ ಪ್ಯಾರಾಗಳಾಗಿ ಆಯೋಜಿಸಿ.",
	"hindi":   "हिंदी में एक व्यापक, निरंतर और विस्तृत कथात्मक सारांश प्रदान करें। सामग्री को अलग-अलग पैराग्राफों में व्यवस्थित करें, विषयों के बीच सहज संक्रमण सुनिश्चित करें।",
	"spanish": "Proporcione un resumen narrativo completo, continuo y detallado en español. Organice el contenido en párrafos distintos, asegurando transiciones fluidas entre temas.",
	"french":  "Fournissez un résumé narratif complet, continu et détaillé en français. Organisez le contenu en paragraphes distincts, assurant des transitions fluides entre les sujets.",
	"german":  "Geben Sie eine umfassende, kontinuierliche und detaillierte erzählende Zusammenfassung auf Deutsch. Gliedern Sie den Inhalt in verschiedene Absätze, um fließende Übergänge zwischen den Themen zu gewährleisten.",
}

// Instruction returns the instruction fragment for language, or the english one
// when the key is unknown. Lookup is exact: keys are lower-case.
func Instruction(language string) string {
	if s, ok := instructions[language]; ok {
		return s
	}
	return instructions[DefaultLanguage]
}

// Supported reports whether language has its own instruction fragment.
func Supported(language string) bool {
	_, ok := instructions[language]
	return ok
}

// Languages returns the supported language keys in sorted order.
func Languages() []string {
	out := make([]string, 0, len(instructions))
	for k := range instructions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Normalize lower-cases and trims a user supplied language name.
// Used by the bot where users type names by hand.
func Normalize(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
