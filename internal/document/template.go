// Package document projects the live contract state into the agreement
// template and renders it as Markdown or HTML.
package document

import (
	_ "embed"
	"fmt"
	"regexp"
	"time"

	"github.com/rpggio/fcea/internal/domain/contract"
)

//go:embed agreement.md
var agreementTemplate string

var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9]+)\s*\}\}`)

// Template returns the raw agreement template.
func Template() string {
	return agreementTemplate
}

// Fill replaces every {{Name}} token whose name is known. Unknown tokens are
// left as written.
func Fill(tmpl string, p Placeholders) string {
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(tok string) string {
		name := tokenPattern.FindStringSubmatch(tok)[1]
		if v, ok := p[name]; ok {
			return v
		}
		return tok
	})
}

// Tokens returns the distinct placeholder names referenced by tmpl, in order
// of first appearance.
func Tokens(tmpl string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range tokenPattern.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Markdown renders the agreement for the two parties as Markdown.
func Markdown(founder contract.FounderParty, contributor contract.ContributorParty, now time.Time) string {
	return Fill(agreementTemplate, Project(founder, contributor, now))
}

// PDFFileName is the download name of the agreement on the given day.
func PDFFileName(now time.Time) string {
	return fmt.Sprintf("Founding-Contributor-Engagement-Agreement-%s.pdf", now.Format("2006-01-02"))
}
