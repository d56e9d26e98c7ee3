package storage

import "time"

// ItemType classifies what kind of payload an idea carries.
type ItemType string

const (
	ItemText  ItemType = "text"
	ItemImage ItemType = "image"
	ItemFile  ItemType = "file"
)

// ValidItemType reports whether t is a known item type.
func ValidItemType(t ItemType) bool {
	switch t {
	case ItemText, ItemImage, ItemFile:
		return true
	}
	return false
}

// Idea is a captured note or snippet.
type Idea struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     *string   `json:"content"`
	Color       string    `json:"color"`
	IsPinned    bool      `json:"isPinned"`
	IsFavorite  bool      `json:"isFavorite"`
	IsLocked    bool      `json:"isLocked"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CategoryID  *int64    `json:"categoryId"`
	IsDeleted   bool      `json:"isDeleted"`
	ItemType    ItemType  `json:"itemType"`
	DataBlob    []byte    `json:"dataBlob,omitempty"`
	ContentHash *string   `json:"contentHash,omitempty"`
}

// Category is a node in the organizational tree. Top-level nodes are
// "groups", children are "zones", but the structure allows arbitrary depth.
type Category struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	ParentID   *int64      `json:"parentId"`
	Color      string      `json:"color"`
	SortOrder  int         `json:"sortOrder"`
	PresetTags string      `json:"presetTags"`
	Children   []*Category `json:"children,omitempty"`
}

// Scope is the primary view filter. Exactly one scope is active at a time.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeTrash    Scope = "trash"
	ScopeCategory Scope = "category"
	ScopeToday    Scope = "today"
	ScopeUntagged Scope = "untagged"
	ScopeBookmark Scope = "bookmark"
)

// ValidScope reports whether s is a known scope.
func ValidScope(s Scope) bool {
	switch s {
	case ScopeAll, ScopeTrash, ScopeCategory, ScopeToday, ScopeUntagged, ScopeBookmark:
		return true
	}
	return false
}

// DateBucket names a creation-date facet window.
type DateBucket string

const (
	DateToday     DateBucket = "today"
	DateYesterday DateBucket = "yesterday"
	DateWeek      DateBucket = "week"
	DateMonth     DateBucket = "month"
)

// Criteria are the secondary facet filters. Within a facet the values
// combine with OR; facets combine with each other (and with the scope and
// search) with AND. Empty slices impose no constraint.
type Criteria struct {
	Stars  []int        `json:"stars,omitempty"`
	Colors []string     `json:"colors,omitempty"`
	Types  []ItemType   `json:"types,omitempty"`
	Tags   []string     `json:"tags,omitempty"`
	Dates  []DateBucket `json:"dates,omitempty"`
}

// Empty reports whether no facet is set.
func (c *Criteria) Empty() bool {
	if c == nil {
		return true
	}
	return len(c.Stars) == 0 && len(c.Colors) == 0 && len(c.Types) == 0 &&
		len(c.Tags) == 0 && len(c.Dates) == 0
}

// Filter is a structured idea query.
type Filter struct {
	// Search matches title, content, and associated tag names,
	// case-insensitive substring. Empty means no text filter.
	Search string
	Scope  Scope
	// CategoryID scopes ScopeCategory. Nil means "uncategorized".
	CategoryID *int64
	// TagFilter requires the idea to carry this exact tag (single-tag
	// drill-down, distinct from Criteria.Tags).
	TagFilter string
	Criteria  *Criteria
}

// TagCount is a tag usage statistic.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FacetStats are the available-option counts shown next to each facet. They
// are computed under the active scope and search but without the criteria
// themselves.
type FacetStats struct {
	Stars  map[int]int        `json:"stars"`
	Colors map[string]int     `json:"colors"`
	Types  map[ItemType]int   `json:"types"`
	Tags   []TagCount         `json:"tags"`
	Dates  map[DateBucket]int `json:"dates"`
}

// SidebarCounts are the independently scoped counts for the navigation
// sidebar.
type SidebarCounts struct {
	All           int           `json:"all"`
	Today         int           `json:"today"`
	Uncategorized int           `json:"uncategorized"`
	Untagged      int           `json:"untagged"`
	Bookmark      int           `json:"bookmark"`
	Trash         int           `json:"trash"`
	Categories    map[int64]int `json:"categories"`
}
