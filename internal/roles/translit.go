// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roles

import "strings"

// cyrillicToLatin is a GOST-style transliteration table. Provider
// records romanize Cyrillic bylines; hints arriving in Cyrillic must be
// expanded to their Latin form to match.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Transliterate converts Cyrillic letters in a name to Latin, keeping
// capitalization of word starts. Text without Cyrillic returns
// unchanged.
func Transliterate(name string) string {
	hasCyrillic := false
	for _, r := range name {
		if _, ok := cyrillicToLatin[lowerRune(r)]; ok {
			hasCyrillic = true
			break
		}
	}
	if !hasCyrillic {
		return name
	}

	var b strings.Builder
	for _, r := range name {
		lower := lowerRune(r)
		lat, ok := cyrillicToLatin[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if r != lower && lat != "" {
			b.WriteString(strings.ToUpper(lat[:1]) + lat[1:])
		} else {
			b.WriteString(lat)
		}
	}
	return b.String()
}

func lowerRune(r rune) rune {
	if r >= 'А' && r <= 'Я' {
		return r + ('а' - 'А')
	}
	if r == 'Ё' {
		return 'ё'
	}
	return r
}
