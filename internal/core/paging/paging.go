package paging

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Request carries 1-based page selection for list queries.
type Request struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps the request into the supported range and applies
// defaults. Zero values mean "not provided".
func (r *Request) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
}

// Offset returns the number of rows to skip for this page.
func (r Request) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Result describes one page of a list response. Total is the unpaginated
// match count; Pages is derived from it so clients can render pagers.
type Result struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewResult computes the pagination envelope for a normalized request
// and a total match count.
func NewResult(req Request, total int) Result {
	pages := 0
	if total > 0 {
		pages = (total + req.Limit - 1) / req.Limit
	}
	return Result{Page: req.Page, Limit: req.Limit, Total: total, Pages: pages}
}
