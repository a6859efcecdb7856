package models

// ContentPage is one editable page-copy document of the marketing site.
// Fields holds the free-form copy blocks the frontend renders; the store
// never interprets them beyond being valid JSON.
type ContentPage struct {
	Page      string                 `json:"page"`
	Locale    string                 `json:"locale"`
	Revision  string                 `json:"revision"`
	UpdatedAt string                 `json:"updatedAt"` // ISO8601 timestamp
	Fields    map[string]interface{} `json:"fields"`
}
