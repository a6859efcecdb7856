package handlers

import (
	"errors"
	"net/http"
	"os"

	"cocoti/services/legal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LegalHandler serves the parsed legal documents.
type LegalHandler struct {
	Reader *legal.Reader
}

// NewLegalHandler creates a new LegalHandler.
func NewLegalHandler(reader *legal.Reader) *LegalHandler {
	return &LegalHandler{Reader: reader}
}

// GetDocumentHandler returns the parsed document for a locale. The endpoint
// never fails on content problems: a legal notice that was never provisioned
// falls back to the built-in default (the company block must always render),
// while any other miss degrades to the localized "temporarily unavailable"
// document.
func (h *LegalHandler) GetDocumentHandler(c *gin.Context) {
	locale := c.Param("locale")
	doc := legal.DocType(c.Param("doc"))

	if !isSupportedLocale(locale) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported locale"})
		return
	}
	if doc != legal.DocLegalNotice && doc != legal.DocPrivacyPolicy {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document"})
		return
	}

	parsed, err := h.Reader.Read(locale, doc)
	if err != nil {
		getLogger(c).Warn("Legal document read failed",
			zap.String("locale", locale), zap.String("doc", string(doc)), zap.Error(err))
		if doc == legal.DocLegalNotice && errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusOK, legal.DefaultLegalNotice(locale))
			return
		}
		c.JSON(http.StatusOK, legal.UnavailableDocument(locale, doc))
		return
	}
	if len(parsed.Sections) == 0 {
		c.JSON(http.StatusOK, legal.UnavailableDocument(locale, doc))
		return
	}
	c.JSON(http.StatusOK, parsed)
}

func isSupportedLocale(locale string) bool {
	for _, l := range legal.SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}
