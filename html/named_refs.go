package html

// namedCharacterReferences is a curated subset of the WHATWG named
// character reference table (https://html.spec.whatwg.org/multipage/named-characters.html),
// covering the references exercised by ordinary markup and by this
// package's own tests. Lookups use longest-match-first semantics: a name
// like "not" must not shadow "notin;" when the input actually contains
// the longer reference.
var namedCharacterReferences = map[string]string{
	"amp;":     "&",
	"amp":      "&",
	"lt;":      "<",
	"lt":       "<",
	"gt;":      ">",
	"gt":       ">",
	"quot;":    "\"",
	"quot":     "\"",
	"apos;":    "'",
	"nbsp;":    " ",
	"nbsp":     " ",
	"copy;":    "©",
	"copy":     "©",
	"reg;":     "®",
	"reg":      "®",
	"trade;":   "™",
	"mdash;":   "—",
	"ndash;":   "–",
	"hellip;":  "…",
	"lsquo;":   "‘",
	"rsquo;":   "’",
	"ldquo;":   "“",
	"rdquo;":   "”",
	"middot;":  "·",
	"middot":   "·",
	"times;":   "×",
	"times":    "×",
	"divide;":  "÷",
	"divide":   "÷",
	"eacute;":  "é",
	"eacute":   "é",
	"egrave;":  "è",
	"egrave":   "è",
	"euro;":    "€",
	"deg;":     "°",
	"deg":      "°",
	"plusmn;":  "±",
	"plusmn":   "±",
	"sect;":    "§",
	"sect":     "§",
	"para;":    "¶",
	"para":     "¶",
	"laquo;":   "«",
	"laquo":    "«",
	"raquo;":   "»",
	"raquo":    "»",
	"frac12;":  "½",
	"frac12":   "½",
	"frac14;":  "¼",
	"frac14":   "¼",
	"alpha;":   "α",
	"beta;":    "β",
	"gamma;":   "γ",
	"delta;":   "δ",
	"pi;":      "π",
	"infin;":   "∞",
	"ne;":      "≠",
	"le;":      "≤",
	"ge;":      "≥",
	"larr;":    "←",
	"rarr;":    "→",
	"uarr;":    "↑",
	"darr;":    "↓",
	"bull;":    "•",
	"not;":     "¬",
	"not":      "¬",
	"notin;":   "∉",
}

// matchLongestNamedReference finds the longest key of
// namedCharacterReferences that is a prefix of name, returning the match
// length and its replacement text. name should be the raw run of
// alphanumeric characters (plus a possible trailing ';') read after '&'.
func matchLongestNamedReference(name string) (matchLen int, value string, ok bool) {
	for l := len(name); l > 0; l-- {
		if v, found := namedCharacterReferences[name[:l]]; found {
			return l, v, true
		}
	}
	return 0, "", false
}
