package handlers

import (
	"net/http"
	"os"

	"cocoti/services/content"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentHandler serves and edits the JSON-file-backed page copy.
type ContentHandler struct {
	Store *content.Store
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(store *content.Store) *ContentHandler {
	return &ContentHandler{Store: store}
}

// ListPagesHandler returns the page names available for a locale.
func (h *ContentHandler) ListPagesHandler(c *gin.Context) {
	pages, err := h.Store.List(c.Param("locale"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPageHandler returns one page's copy.
func (h *ContentHandler) GetPageHandler(c *gin.Context) {
	page, err := h.Store.Get(c.Param("locale"), c.Param("page"))
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		getLogger(c).Error("Failed to load content page", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not load page"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdatePageHandler replaces a page's copy. Sits behind the admin gate.
func (h *ContentHandler) UpdatePageHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Fields map[string]interface{} `json:"fields" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	page, err := h.Store.Update(c.Param("locale"), c.Param("page"), req.Fields)
	if err != nil {
		logger.Error("Failed to update content page", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Info("Content page updated",
		zap.String("locale", page.Locale), zap.String("page", page.Page), zap.String("revision", page.Revision))
	c.JSON(http.StatusOK, page)
}
