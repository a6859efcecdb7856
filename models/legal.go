package models

// LegalDocument is a fully parsed legal page (legal notice, privacy policy).
type LegalDocument struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Sections []LegalSection `json:"sections"`
}

// LegalSection is one "###" block of a legal document, in source order.
type LegalSection struct {
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Company *CompanyInfo `json:"company,omitempty"`
}

// CompanyInfo holds the key/value lines of a recognized company-information
// block. Fields left empty were absent from the source document.
type CompanyInfo struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}
