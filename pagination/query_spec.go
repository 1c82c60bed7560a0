package pagination

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is used when the caller doesn't ask for a page size.
	DefaultLimit = 10
	// MaxLimit is the server enforced ceiling on page size.
	MaxLimit = 50
)

// Order is the sort order of a paginated query.
type Order int

const (
	// NewestFirst sorts by insert order descending. This is the default.
	NewestFirst Order = iota
	// OldestFirst sorts by insert order ascending.
	OldestFirst
	// MostViewed sorts by view count descending, tie-broken by insert order
	// descending so that equal-view rows have a deterministic cursor order.
	MostViewed
)

type eqCond struct {
	column string
	value  interface{}
}

/*

QuerySpec is an explicit, field-by-field assembled description of one
paginated query: equality filters, an optional search term, sort order,
page size and the optional cursor bound. It is built by the handler and
translated into a single bounded store query by Paginate, which keeps
conditional query construction out of the retrieval path.

*/
type QuerySpec struct {
	conds      []eqCond
	searchTerm string
	searchCols []string
	order      Order
	limit      int
	cursor     *Cursor
}

func NewQuerySpec() *QuerySpec {
	return &QuerySpec{limit: DefaultLimit}
}

// WhereEq adds an equality filter, e.g. WhereEq("video_id", id).
func (s *QuerySpec) WhereEq(column string, value interface{}) *QuerySpec {
	s.conds = append(s.conds, eqCond{column: column, value: value})
	return s
}

// Search adds a case-insensitive substring match over the given columns.
// An empty term is a no-op.
func (s *QuerySpec) Search(term string, columns ...string) *QuerySpec {
	s.searchTerm = term
	s.searchCols = columns
	return s
}

func (s *QuerySpec) OrderBy(order Order) *QuerySpec {
	s.order = order
	return s
}

// Limit sets the requested page size. Paginate clamps it to [1, MaxLimit].
func (s *QuerySpec) Limit(limit int) *QuerySpec {
	s.limit = limit
	return s
}

// Cursor sets the position bound decoded from the previous page's token.
func (s *QuerySpec) Cursor(c *Cursor) *QuerySpec {
	s.cursor = c
	return s
}

func (s *QuerySpec) HasCursor() bool {
	return s.cursor != nil
}

func (s *QuerySpec) clampedLimit() int {
	if s.limit <= 0 {
		return DefaultLimit
	}
	if s.limit > MaxLimit {
		return MaxLimit
	}
	return s.limit
}

// applyFilter attaches the equality and search conditions, without the
// cursor bound. Used both by the page query and the first-page total count.
func (s *QuerySpec) applyFilter(db *gorm.DB) *gorm.DB {
	for _, c := range s.conds {
		db = db.Where(fmt.Sprintf("%s = ?", c.column), c.value)
	}
	if s.searchTerm != "" && len(s.searchCols) > 0 {
		pattern := "%" + s.searchTerm + "%"
		or := db.Session(&gorm.Session{NewDB: true})
		for i, col := range s.searchCols {
			if i == 0 {
				or = or.Where(fmt.Sprintf("%s ILIKE ?", col), pattern)
			} else {
				or = or.Or(fmt.Sprintf("%s ILIKE ?", col), pattern)
			}
		}
		db = db.Where(or)
	}
	return db
}

// applyBound attaches the cursor bound matching the sort order. The bound is
// strict, the row the cursor references is never returned again.
func (s *QuerySpec) applyBound(db *gorm.DB) (*gorm.DB, error) {
	if s.cursor == nil {
		return db, nil
	}
	switch s.order {
	case NewestFirst:
		if s.cursor.HasViews {
			return nil, ErrInvalidCursor
		}
		return db.Where("cursor < ?", s.cursor.Seq), nil
	case OldestFirst:
		if s.cursor.HasViews {
			return nil, ErrInvalidCursor
		}
		return db.Where("cursor > ?", s.cursor.Seq), nil
	case MostViewed:
		if !s.cursor.HasViews {
			return nil, ErrInvalidCursor
		}
		return db.Where("views < ? OR (views = ? AND cursor < ?)",
			s.cursor.Views, s.cursor.Views, s.cursor.Seq), nil
	}
	return nil, ErrInvalidCursor
}

func (s *QuerySpec) applyOrder(db *gorm.DB) *gorm.DB {
	switch s.order {
	case OldestFirst:
		return db.Order("cursor ASC")
	case MostViewed:
		return db.Order("views DESC, cursor DESC")
	default:
		return db.Order("cursor DESC")
	}
}
