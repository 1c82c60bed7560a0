package pagination

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Entity is implemented by every model that can be served through Paginate.
type Entity interface {
	PageCursor() int64
	PageViews() int64
}

/*

Page is the transient result of one page request.

Items: the page, at most the clamped limit, in sort order
HasMore: whether another page exists, recomputed from a fresh over-fetch on
	every call, never cached
NextCursor: token for the next request, nil on the final or empty page
TotalCount: total matching rows disregarding the cursor bound, only set on
	the first page of a session

*/
type Page[T Entity] struct {
	Items      []T
	HasMore    bool
	NextCursor *string
	TotalCount *int64
}

// Paginate runs one page request against the store: over-fetch limit+1 rows
// under the spec's filter and order, trim the probe row, and derive HasMore
// and NextCursor from what was actually returned. A cursor pointing past the
// end of the collection yields an empty page, not an error.
func Paginate[T Entity](db *gorm.DB, spec *QuerySpec) (*Page[T], error) {
	limit := spec.clampedLimit()

	q := spec.applyFilter(db)
	q, err := spec.applyBound(q)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := spec.applyOrder(q).Limit(limit + 1).Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "pagination query failed")
	}

	page := &Page[T]{}
	page.HasMore = len(items) > limit
	if page.HasMore {
		items = items[:limit]
	}
	page.Items = items

	if page.HasMore && len(items) > 0 {
		last := items[len(items)-1]
		token := Encode(Cursor{
			Seq:      last.PageCursor(),
			Views:    last.PageViews(),
			HasViews: spec.order == MostViewed,
		})
		page.NextCursor = &token
	}

	// The total count is an extra round trip, intentionally paid only once
	// per pagination session rather than on every page.
	if !spec.HasCursor() {
		var total int64
		var zero T
		if err := spec.applyFilter(db.Model(&zero)).Count(&total).Error; err != nil {
			return nil, errors.Wrap(err, "pagination count failed")
		}
		page.TotalCount = &total
	}

	return page, nil
}
