package database

import (
	"strings"

	"github.com/thenoetrevino/todoey/internal/search"
	"github.com/thenoetrevino/todoey/internal/types"
)

type filterKind int

const (
	filterNone filterKind = iota
	filterTextContains
)

// ItemFilter is the optional part of an item query: either no filter or a
// title-contains match.
type ItemFilter struct {
	kind filterKind
	text string
}

// NoFilter matches every item in the category
func NoFilter() ItemFilter {
	return ItemFilter{kind: filterNone}
}

// TextContains matches items whose title contains text, ignoring case and
// diacritics. Text that folds to nothing (empty, or only combining marks) is
// the same as NoFilter.
func TextContains(text string) ItemFilter {
	if search.Fold(text) == "" {
		return NoFilter()
	}
	return ItemFilter{kind: filterTextContains, text: text}
}

// IsSearch reports whether the filter restricts by title
func (f ItemFilter) IsSearch() bool {
	return f.kind == filterTextContains
}

// Text returns the search text, empty for NoFilter
func (f ItemFilter) Text() string {
	return f.text
}

// ItemQuery selects the items of one category, optionally narrowed by a filter
type ItemQuery struct {
	CategoryID types.CategoryID
	Filter     ItemFilter
}

// where renders the query as one compound predicate with bound arguments.
// The category condition is always present.
func (q ItemQuery) where() (string, []any) {
	conds := []string{"category_id = ?"}
	args := []any{q.CategoryID.String()}

	switch q.Filter.kind {
	case filterTextContains:
		// title_key is stored folded, so fold the needle the same way
		conds = append(conds, "instr(title_key, ?) > 0")
		args = append(args, search.Fold(q.Filter.text))
	case filterNone:
	}

	return strings.Join(conds, " AND "), args
}
