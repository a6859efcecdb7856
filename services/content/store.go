// File: cocoti/services/content/store.go
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"cocoti/models"

	"github.com/google/uuid"
)

// DefaultBaseDir is where page copy lives unless CONTENT_DIR says otherwise.
const DefaultBaseDir = "_resources/content"

// pageNameRe keeps page identifiers to a safe charset; anything else would
// allow traversal out of the content directory.
var pageNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var supportedLocales = map[string]bool{"fr": true, "en": true}

// Store is the JSON-file-backed page-copy store behind the CMS. One file per
// page per locale; writes are atomic (temp file + rename) and bump the
// revision.
type Store struct {
	BaseDir string
}

// NewStore returns a Store rooted at baseDir, or at DefaultBaseDir when
// baseDir is empty.
func NewStore(baseDir string) *Store {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	return &Store{BaseDir: baseDir}
}

// List returns the page names available for a locale, sorted.
func (s *Store) List(locale string) ([]string, error) {
	if !supportedLocales[locale] {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
	entries, err := os.ReadDir(filepath.Join(s.BaseDir, locale))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list content for locale %s: %w", locale, err)
	}
	pages := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		pages = append(pages, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(pages)
	return pages, nil
}

// Get loads one page's copy. A missing file surfaces as os.ErrNotExist so
// handlers can answer 404.
func (s *Store) Get(locale, page string) (*models.ContentPage, error) {
	path, err := s.pagePath(locale, page)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc models.ContentPage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	doc.Page = page
	doc.Locale = locale
	return &doc, nil
}

// Update replaces a page's copy fields, stamps a fresh revision and writes
// the file atomically. Creating a page that did not exist yet is allowed.
func (s *Store) Update(locale, page string, fields map[string]interface{}) (*models.ContentPage, error) {
	path, err := s.pagePath(locale, page)
	if err != nil {
		return nil, err
	}
	doc := &models.ContentPage{
		Page:      page,
		Locale:    locale,
		Revision:  uuid.New().String(),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Fields:    fields,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode content page: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+page+"-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to stage content write: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to write content page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to write content page: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to publish content page: %w", err)
	}
	return doc, nil
}

func (s *Store) pagePath(locale, page string) (string, error) {
	if !supportedLocales[locale] {
		return "", fmt.Errorf("unsupported locale %q", locale)
	}
	if !pageNameRe.MatchString(page) {
		return "", fmt.Errorf("invalid page name %q", page)
	}
	return filepath.Join(s.BaseDir, locale, page+".json"), nil
}
