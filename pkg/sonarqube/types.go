package sonarqube

// Paging represents the paging block of a search response.
type Paging struct {
	PageIndex int `json:"pageIndex" yaml:"pageIndex"`
	PageSize  int `json:"pageSize"  yaml:"pageSize"`
	Total     int `json:"total"     yaml:"total"`
}

// Consumed returns the number of items covered by this and all previous pages.
func (p Paging) Consumed() int {
	return p.PageSize * p.PageIndex
}

// HasNext reports whether another page follows this one.
func (p Paging) HasNext() bool {
	return p.PageSize > 0 && p.Consumed() < p.Total
}

// PaginatedResponse represents one page of a search response.
type PaginatedResponse[T any] struct {
	Paging     Paging `json:"paging"     yaml:"paging"`
	Components []T    `json:"components" yaml:"components"`
}

// ProjectSearchResponse represents a page of /api/projects/search.
type ProjectSearchResponse = PaginatedResponse[Project]

// Authentication represents the /api/authentication/validate response.
type Authentication struct {
	Valid bool `json:"valid" yaml:"valid"`
}
