package helpers

import (
	"slices"
	"strings"
)

// iso639_2 maps two-letter language codes to ISO 639-2/B.
var iso639_2 = map[string]string{
	"af": "afr",
	"ar": "ara",
	"ca": "cat",
	"cs": "cze",
	"da": "dan",
	"de": "ger",
	"el": "gre",
	"en": "eng",
	"eo": "epo",
	"es": "spa",
	"et": "est",
	"eu": "baq",
	"fa": "per",
	"fi": "fin",
	"fr": "fre",
	"gl": "glg",
	"he": "heb",
	"hi": "hin",
	"hr": "hrv",
	"hu": "hun",
	"id": "ind",
	"it": "ita",
	"ja": "jpn",
	"ko": "kor",
	"la": "lat",
	"nl": "dut",
	"no": "nor",
	"pl": "pol",
	"pt": "por",
	"ro": "rum",
	"ru": "rus",
	"sk": "slo",
	"sl": "slv",
	"sv": "swe",
	"tr": "tur",
	"uk": "ukr",
	"zh": "chi",
}

// ISO639_2 converts a two-letter code to its three-letter form. Unknown
// codes are returned lowercased.
func ISO639_2(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if code, ok := iso639_2[lang]; ok {
		return code
	}
	return lang
}

// OrderedLanguages returns first followed by the remaining keys sorted.
// first is omitted when empty or absent from langs.
func OrderedLanguages[V any](first string, langs map[string]V) []string {
	var result []string
	if _, ok := langs[first]; ok && first != "" {
		result = append(result, first)
	}
	rest := make([]string, 0, len(langs))
	for lang := range langs {
		if lang != first {
			rest = append(rest, lang)
		}
	}
	slices.Sort(rest)
	return append(result, rest...)
}
