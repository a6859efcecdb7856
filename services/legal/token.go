package legal

import (
	"regexp"
	"strings"
)

// lineKind classifies a single source line of a legal document.
type lineKind int

const (
	lineBlank         lineKind = iota
	lineTitle                  // "# " or "## " — document title/subtitle, sourced elsewhere
	lineHeading                // "### " — starts a new section
	lineCompanyMarker          // exact locale-specific company-information marker
	lineCompanyField           // "- **<key>**: <value>"
	lineText                   // anything else non-empty
)

// lineToken is the tagged classification of one line. Only the fields
// relevant to the kind are populated.
type lineToken struct {
	kind  lineKind
	text  string // heading or body text, trimmed
	key   string // company field key, lower-cased and trimmed
	value string // company field value, trimmed
}

// companyMarkers maps a locale to the literal line that opens a
// company-information block in that locale's documents.
var companyMarkers = map[string]string{
	"fr": "**Informations de l'entreprise :**",
	"en": "**Company information:**",
}

var companyFieldRe = regexp.MustCompile(`^-\s+\*\*(.+?)\*\*\s*:\s*(.*)$`)

// companyFieldKeys maps the accepted key spellings (per locale) onto the
// CompanyInfo field they populate. Unknown keys are dropped by the parser.
var companyFieldKeys = map[string]string{
	"nom":       "name",
	"name":      "name",
	"adresse":   "address",
	"address":   "address",
	"téléphone": "phone",
	"phone":     "phone",
	"email":     "email",
}

// classifyLine tokenizes one source line. It is a pure function of the line
// and the locale's company marker; interpreting the token in context (inside
// or outside a company block) is the parser's job.
func classifyLine(line, marker string) lineToken {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return lineToken{kind: lineBlank}
	}
	if strings.HasPrefix(trimmed, "###") {
		return lineToken{kind: lineHeading, text: strings.TrimSpace(strings.TrimPrefix(trimmed, "###"))}
	}
	if strings.HasPrefix(trimmed, "#") {
		return lineToken{kind: lineTitle}
	}
	if trimmed == marker {
		return lineToken{kind: lineCompanyMarker}
	}
	if m := companyFieldRe.FindStringSubmatch(trimmed); m != nil {
		// Keep the raw text: outside a company block this line is plain body.
		return lineToken{
			kind:  lineCompanyField,
			text:  trimmed,
			key:   strings.ToLower(strings.TrimSpace(m[1])),
			value: strings.TrimSpace(m[2]),
		}
	}
	return lineToken{kind: lineText, text: trimmed}
}
