package legal

import (
	"strings"

	"cocoti/models"
)

// Parse splits a Markdown-subset legal document into sections. Sections are
// keyed by "###" headings and returned in source order; "#" and "##" lines
// are ignored (title and subtitle come from configuration, not the file).
// Lines inside a company-information block that match no known key are
// dropped silently: parsing is best-effort, not validation.
func Parse(content, locale string) []models.LegalSection {
	marker := companyMarkers[locale]

	sections := []models.LegalSection{}
	var (
		title     string
		body      []string
		company   *models.CompanyInfo
		inSection bool
		inCompany bool
	)

	flush := func() {
		if !inSection {
			return
		}
		sections = append(sections, models.LegalSection{
			Title:   title,
			Content: strings.TrimSpace(strings.Join(body, " ")),
			Company: company,
		})
	}

	for _, line := range strings.Split(content, "\n") {
		tok := classifyLine(line, marker)
		switch tok.kind {
		case lineBlank, lineTitle:
			continue
		case lineHeading:
			flush()
			title = tok.text
			body = nil
			company = nil
			inSection = true
			inCompany = false
		case lineCompanyMarker:
			inCompany = true
		case lineCompanyField:
			if !inCompany {
				// Outside a company block this is ordinary body text.
				if inSection {
					body = append(body, tok.text)
				}
				continue
			}
			field, ok := companyFieldKeys[tok.key]
			if !ok {
				continue
			}
			if company == nil {
				company = &models.CompanyInfo{}
			}
			// Last matched key wins on duplicates.
			switch field {
			case "name":
				company.Name = tok.value
			case "address":
				company.Address = tok.value
			case "phone":
				company.Phone = tok.value
			case "email":
				company.Email = tok.value
			}
		case lineText:
			// Stray lines inside a company block never leak into the body.
			if inSection && !inCompany {
				body = append(body, tok.text)
			}
		}
	}
	flush()

	return sections
}
