// Package pagination implements cursor based pagination over mutable,
// concurrently written collections. Correctness relies on the entities'
// monotonic auto-increment Cursor column: new rows always sort after the
// cursor boundary of any in-flight pagination session, so a session walking
// toward older rows never re-observes a row it already returned.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidCursor is returned when a cursor token cannot be decoded, or when
// its shape does not match the requested sort order. Callers decide per
// endpoint whether this is a hard 400 or a silent fall back to the first page.
var ErrInvalidCursor = errors.New("invalid cursor")

/*

Cursor is the decoded position of the last entity served on the previous
page. It is produced by Encode after serving a page, handed to the client as
an opaque token, and never persisted server side.

Seq: the entity's monotonic insert-order key
Views: the entity's view count, only set for most-viewed ordering where the
	sort key is the compound (views, seq) pair

*/
type Cursor struct {
	Seq      int64
	Views    int64
	HasViews bool
}

// Encode serializes a cursor into the opaque token handed to clients.
func Encode(c Cursor) string {
	payload := strconv.FormatInt(c.Seq, 10)
	if c.HasViews {
		payload = fmt.Sprintf("%d.%d", c.Views, c.Seq)
	}
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// Decode parses an opaque token back into a cursor. A malformed token yields
// ErrInvalidCursor, never a panic or a partial cursor.
func Decode(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	parts := strings.Split(string(raw), ".")
	switch len(parts) {
	case 1:
		seq, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return Cursor{}, ErrInvalidCursor
		}
		return Cursor{Seq: seq}, nil
	case 2:
		views, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return Cursor{}, ErrInvalidCursor
		}
		seq, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Cursor{}, ErrInvalidCursor
		}
		return Cursor{Seq: seq, Views: views, HasViews: true}, nil
	default:
		return Cursor{}, ErrInvalidCursor
	}
}
