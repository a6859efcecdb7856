// File: cocoti/services/legal/reader.go
package legal

import (
	"fmt"
	"os"
	"path/filepath"

	"cocoti/models"
)

// DocType identifies a legal document kind; it doubles as the file name
// (without extension) under the per-locale directory.
type DocType string

const (
	DocLegalNotice   DocType = "legal-notice"
	DocPrivacyPolicy DocType = "privacy-policy"
)

// DefaultBaseDir is where legal documents live unless LEGAL_DOCS_DIR says
// otherwise.
const DefaultBaseDir = "_resources/legal"

// SupportedLocales is the closed set of locales the site ships.
var SupportedLocales = []string{"fr", "en"}

// docTitles carries the display title/subtitle per document and locale. The
// "#"/"##" lines of the source files are ignored in favour of this table.
var docTitles = map[DocType]map[string][2]string{
	DocLegalNotice: {
		"fr": {"Mentions légales", "Informations légales concernant Cocoti"},
		"en": {"Legal Notice", "Legal information about Cocoti"},
	},
	DocPrivacyPolicy: {
		"fr": {"Politique de confidentialité", "Comment Cocoti protège vos données"},
		"en": {"Privacy Policy", "How Cocoti protects your data"},
	},
}

// Reader loads legal documents from disk.
type Reader struct {
	BaseDir string
}

// NewReader returns a Reader rooted at baseDir, or at DefaultBaseDir when
// baseDir is empty.
func NewReader(baseDir string) *Reader {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	return &Reader{BaseDir: baseDir}
}

// Read loads and parses the requested document. It returns an error for
// unknown locales or document types and for unreadable files; the caller
// chooses the fallback policy (see UnavailableDocument and the Default*
// constructors). A readable file with zero "###" headings parses to a
// document with zero sections, which callers should also treat as a miss.
func (r *Reader) Read(locale string, doc DocType) (*models.LegalDocument, error) {
	titles, ok := docTitles[doc]
	if !ok {
		return nil, fmt.Errorf("unknown legal document type %q", doc)
	}
	tt, ok := titles[locale]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}

	path := filepath.Join(r.BaseDir, locale, string(doc)+".md")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read legal document %s: %w", path, err)
	}

	return &models.LegalDocument{
		Title:    tt[0],
		Subtitle: tt[1],
		Sections: Parse(string(raw), locale),
	}, nil
}

// UnavailableDocument is the degraded document served when the source file
// cannot be read: a single section saying the document is temporarily
// unavailable, in the requested locale.
func UnavailableDocument(locale string, doc DocType) *models.LegalDocument {
	title, subtitle := "Legal document", ""
	if titles, ok := docTitles[doc]; ok {
		if tt, ok := titles[locale]; ok {
			title, subtitle = tt[0], tt[1]
		}
	}
	section := models.LegalSection{
		Title:   "Document temporarily unavailable",
		Content: "The requested document is temporarily unavailable. Please try again later.",
	}
	if locale == "fr" {
		section = models.LegalSection{
			Title:   "Document temporairement indisponible",
			Content: "Le document demandé est temporairement indisponible. Veuillez réessayer plus tard.",
		}
	}
	return &models.LegalDocument{
		Title:    title,
		Subtitle: subtitle,
		Sections: []models.LegalSection{section},
	}
}

// DefaultLegalNotice returns the built-in legal notice used when no source
// file has ever been provisioned for the locale.
func DefaultLegalNotice(locale string) *models.LegalDocument {
	tt := docTitles[DocLegalNotice]["en"]
	if t, ok := docTitles[DocLegalNotice][locale]; ok {
		tt = t
	}
	company := &models.CompanyInfo{
		Name:    "Cocoti SAS",
		Address: "128 Rue de la Boétie, 75008 Paris, France",
		Phone:   "+33 1 84 80 12 34",
		Email:   "contact@cocoti.app",
	}
	if locale == "fr" {
		return &models.LegalDocument{
			Title:    tt[0],
			Subtitle: tt[1],
			Sections: []models.LegalSection{
				{
					Title:   "Éditeur du site",
					Content: "Le site cocoti.app est édité par Cocoti SAS, société par actions simplifiée. La plateforme permet la création et la gestion de cagnottes et de tontines en ligne.",
					Company: company,
				},
				{
					Title:   "Hébergement",
					Content: "Le site est hébergé par un prestataire d'hébergement cloud établi dans l'Union européenne.",
				},
				{
					Title:   "Propriété intellectuelle",
					Content: "L'ensemble des contenus du site (textes, visuels, logos) est la propriété exclusive de Cocoti SAS. Toute reproduction sans autorisation préalable est interdite.",
				},
			},
		}
	}
	return &models.LegalDocument{
		Title:    tt[0],
		Subtitle: tt[1],
		Sections: []models.LegalSection{
			{
				Title:   "Site publisher",
				Content: "The cocoti.app website is published by Cocoti SAS. The platform lets communities create and manage online money pools and tontines.",
				Company: company,
			},
			{
				Title:   "Hosting",
				Content: "The site is hosted by a cloud hosting provider established in the European Union.",
			},
			{
				Title:   "Intellectual property",
				Content: "All site content (texts, visuals, logos) is the exclusive property of Cocoti SAS. Any reproduction without prior authorization is prohibited.",
			},
		},
	}
}

// DefaultPrivacyPolicy returns the built-in privacy policy used when no
// source file has ever been provisioned for the locale.
func DefaultPrivacyPolicy(locale string) *models.LegalDocument {
	tt := docTitles[DocPrivacyPolicy]["en"]
	if t, ok := docTitles[DocPrivacyPolicy][locale]; ok {
		tt = t
	}
	if locale == "fr" {
		return &models.LegalDocument{
			Title:    tt[0],
			Subtitle: tt[1],
			Sections: []models.LegalSection{
				{
					Title:   "Données collectées",
					Content: "Cocoti collecte uniquement les données nécessaires au fonctionnement du service : nom, adresse email, numéro de téléphone et informations de paiement.",
				},
				{
					Title:   "Utilisation des données",
					Content: "Vos données sont utilisées pour la gestion de votre compte, le traitement des paiements et la communication liée à vos cagnottes. Elles ne sont jamais revendues à des tiers.",
				},
				{
					Title:   "Vos droits",
					Content: "Conformément au RGPD, vous disposez d'un droit d'accès, de rectification et de suppression de vos données. Contactez-nous à privacy@cocoti.app.",
				},
			},
		}
	}
	return &models.LegalDocument{
		Title:    tt[0],
		Subtitle: tt[1],
		Sections: []models.LegalSection{
			{
				Title:   "Data we collect",
				Content: "Cocoti only collects the data required to operate the service: name, email address, phone number and payment information.",
			},
			{
				Title:   "How we use it",
				Content: "Your data is used to manage your account, process payments and communicate about your money pools. It is never sold to third parties.",
			},
			{
				Title:   "Your rights",
				Content: "Under the GDPR you may access, rectify and delete your data at any time. Contact us at privacy@cocoti.app.",
			},
		},
	}
}
