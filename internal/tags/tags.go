// Package tags owns the static lookup tables for structured-comment names:
// canonical tag spellings, the inline-tag set, and the declaration-keyword
// table used by the serializer's blank-line heuristic.
//
// Purpose: name normalization as a total, side-effect-free lookup.
// Does not do: parsing or validation; unknown names pass through unchanged.
package tags

import "strings"

// Category selects which lookup table Normalize consults.
type Category uint8

const (
	// CategoryBlock covers block tags such as @param and @return.
	CategoryBlock Category = iota
	// CategoryInline covers inline tags such as {@code} and {@link}.
	CategoryInline
)

// canonicalBlock maps lowercase block-tag keys to their canonical spelling.
// Most Javadoc tags are all-lowercase; the camel-cased ones are the
// exceptions this table exists for.
var canonicalBlock = map[string]string{
	"apinote":     "apiNote",
	"author":      "author",
	"deprecated":  "deprecated",
	"exception":   "exception",
	"hidden":      "hidden",
	"implnote":    "implNote",
	"implspec":    "implSpec",
	"param":       "param",
	"provides":    "provides",
	"return":      "return",
	"see":         "see",
	"serial":      "serial",
	"serialdata":  "serialData",
	"serialfield": "serialField",
	"since":       "since",
	"throws":      "throws",
	"uses":        "uses",
	"version":     "version",
}

var canonicalInline = map[string]string{
	"code":           "code",
	"docroot":        "docRoot",
	"inheritdoc":     "inheritDoc",
	"index":          "index",
	"link":           "link",
	"linkplain":      "linkplain",
	"literal":        "literal",
	"summary":        "summary",
	"systemproperty": "systemProperty",
	"value":          "value",
}

// Normalize returns the canonical spelling for a tag name. Unknown names
// are returned unchanged.
func Normalize(category Category, raw string) string {
	key := strings.ToLower(raw)
	var table map[string]string
	switch category {
	case CategoryBlock:
		table = canonicalBlock
	case CategoryInline:
		table = canonicalInline
	default:
		return raw
	}
	if canonical, ok := table[key]; ok {
		return canonical
	}
	return raw
}

// declarationKeywords lists the words that make a line look like the start
// of a declaration. The serializer preserves a blank line between a closing
// brace and such a line. This is a deliberate UX heuristic on keyword text,
// not a declaration parse.
var declarationKeywords = map[string]struct{}{
	"public":       {},
	"private":      {},
	"protected":    {},
	"static":       {},
	"final":        {},
	"abstract":     {},
	"synchronized": {},
	"native":       {},
	"strictfp":     {},
	"transient":    {},
	"volatile":     {},
	"default":      {},
	"class":        {},
	"interface":    {},
	"enum":         {},
	"record":       {},
	"void":         {},
}

// IsDeclarationKeyword reports whether word opens a declaration-shaped line.
func IsDeclarationKeyword(word string) bool {
	_, ok := declarationKeywords[word]
	return ok
}

// StartsDeclaration reports whether the first word of line is a declaration
// keyword.
func StartsDeclaration(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	word := trimmed
	if idx := strings.IndexFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '(' || r == '<'
	}); idx >= 0 {
		word = trimmed[:idx]
	}
	return IsDeclarationKeyword(word)
}
