// Package language holds the fixed table of languages supported by the
// Text United API. A Language value is the remote numeric identifier.
package language

import (
	"sort"
	"strings"

	apperrors "textunited-client/internal/errors"
)

// Language is a supported language; its value is the Text United language id
type Language int

const (
	ArAE   Language = 21  // Arabic (United Arab Emirates)
	DeDE   Language = 53  // German (Germany)
	EnCA   Language = 158 // English (CA)
	EnGB   Language = 40  // English (UK)
	EnUS   Language = 41  // English (US)
	EsCO   Language = 108 // Spanish (Colombia)
	EsES   Language = 104 // Spanish (Spain)
	FrCA   Language = 48  // French (Canada)
	Ja     Language = 72  // Japanese
	Ko     Language = 76  // Korean
	PtBR   Language = 94  // Portuguese (Brazil)
	ZhHant Language = 33  // Chinese (Traditional)
	ZnHans Language = 32  // Chinese (Simplified)
)

var codes = map[Language]string{
	ArAE:   "ar_ae",
	DeDE:   "de_de",
	EnCA:   "en_ca",
	EnGB:   "en_gb",
	EnUS:   "en_us",
	EsCO:   "es_co",
	EsES:   "es_es",
	FrCA:   "fr_ca",
	Ja:     "ja",
	Ko:     "ko",
	PtBR:   "pt_br",
	ZhHant: "zh_hant",
	ZnHans: "zn_hans",
}

var byCode = func() map[string]Language {
	m := make(map[string]Language, len(codes))
	for lang, code := range codes {
		m[code] = lang
	}
	return m
}()

// ByCode resolves a code such as "en_gb", "en-GB" or "EN_gb"
func ByCode(code string) (Language, error) {
	name := strings.ToLower(code)
	if lang, ok := byCode[name]; ok {
		return lang, nil
	}
	if lang, ok := byCode[strings.ReplaceAll(name, "-", "_")]; ok {
		return lang, nil
	}
	return 0, apperrors.NewUnsupportedLanguageCodeError(code)
}

// ByID resolves a remote language id; ids outside the table are not implemented
func ByID(id int) (Language, error) {
	lang := Language(id)
	if !lang.IsValid() {
		return 0, apperrors.NewUnsupportedLanguageIDError(id)
	}
	return lang, nil
}

// All returns every registered language ordered by code
func All() []Language {
	out := make([]Language, 0, len(codes))
	for lang := range codes {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return codes[out[i]] < codes[out[j]] })
	return out
}

// IsValid checks if the Language is registered
func (l Language) IsValid() bool {
	_, ok := codes[l]
	return ok
}

// ID returns the Text United language id
func (l Language) ID() int {
	return int(l)
}

// Code returns the canonical code, or "" for an unregistered value
func (l Language) Code() string {
	return codes[l]
}

func (l Language) String() string {
	if code, ok := codes[l]; ok {
		return code
	}
	return "unknown"
}
