package domain

import "time"

type SearchType string

const (
	SearchModels    SearchType = "models"
	SearchParts     SearchType = "parts"
	SearchTutorials SearchType = "tutorials"
)

// History is capped at this many entries per user.
const SearchHistoryLimit = 8

// Queries shorter than this never reach the repositories.
const SearchMinQueryLen = 2

// SearchScope is the parsed form of a raw query: the free text plus an
// optional single-type restriction from a one-letter prefix ("p:", "m:",
// "t:").
type SearchScope struct {
	Query string
	Only  SearchType // empty means all types
}

type SearchHit struct {
	Type     SearchType `json:"type"`
	Slug     string     `json:"slug"`
	Label    string     `json:"label"`
	ImageURL string     `json:"image_url,omitempty"`
}

// SearchResults groups hits by entity type, always in the fixed order
// models, parts, tutorials.
type SearchResults struct {
	Models    []SearchHit `json:"models"`
	Parts     []SearchHit `json:"parts"`
	Tutorials []SearchHit `json:"tutorials"`
}

type SearchEntry struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Type      SearchType `json:"type"`
	Slug      string     `json:"slug"`
	Label     string     `json:"label"`
	CreatedAt time.Time  `json:"created_at"`
}

type QuickAction struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// SuggestionView is what a too-short query gets back: past selections and
// quick links instead of search results.
type SuggestionView struct {
	History      []SearchEntry `json:"history"`
	QuickActions []QuickAction `json:"quick_actions"`
}
