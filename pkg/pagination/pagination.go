package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 6
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 20

	PageParam  = "page"
	LimitParam = "limit"
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Normalize clamps the page to 1 and the limit to the allowed range.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	p.Limit = NormalizeLimit(p.Limit)
	return p
}

// Offset is the number of rows skipped before the requested page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Page is the wire shape of a paginated listing.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage assembles a page and its navigation links. Links reuse the path and
// query of base with only the page parameter rewritten; base may be nil.
func NewPage[T any](items []T, total int64, params Params, base *url.URL) Page[T] {
	params = params.Normalize()
	if items == nil {
		items = []T{}
	}

	page := Page[T]{Count: total, Results: items}
	if base == nil {
		return page
	}

	if int64(params.Page*params.Limit) < total {
		page.Next = pageLink(base, params.Page+1)
	}
	if params.Page > 1 {
		page.Previous = pageLink(base, params.Page-1)
	}
	return page
}

func pageLink(base *url.URL, page int) *string {
	u := url.URL{Path: base.Path}
	q := base.Query()
	if page <= 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
