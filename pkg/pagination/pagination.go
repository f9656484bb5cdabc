package pagination

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 25
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds page/size pagination inputs from controllers or services.
type Params struct {
	Page int
	Size int
}

// Page describes one page of results plus the total row count.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

// Normalize enforces the configured defaults and maximum size.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns how many rows to skip for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return p.Normalize().Size
}

// NewPage assembles the page envelope for the given rows and total count.
func NewPage[T any](items []T, total int64, params Params) Page[T] {
	n := params.Normalize()
	totalPages := int(total) / n.Size
	if int(total)%n.Size != 0 {
		totalPages++
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       n.Page,
		Size:       n.Size,
		TotalPages: totalPages,
	}
}
