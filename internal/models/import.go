package models

// ImportEntry is one row of a bulk site import. CategoryName, when set, is
// matched case-insensitively against existing categories; a new category is
// created on miss.
type ImportEntry struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Description  string `json:"description,omitempty"`
	IconURL      string `json:"iconUrl,omitempty"`
	CategoryID   string `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}
