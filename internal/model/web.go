package model

// WebResponse is the envelope of every API response.
//
// Exactly one of Data and Errors is meaningful: success carries Data with a
// null Errors, failure carries a null Data and the message in Errors.
type WebResponse struct {
	Data   any             `json:"data"`
	Errors *string         `json:"errors"`
	Paging *PagingResponse `json:"paging,omitempty"`
}

// PagingResponse describes a page of a collection. CurrentPage is 0-based.
type PagingResponse struct {
	CurrentPage int `json:"currentPage"`
	TotalPage   int `json:"totalPage"`
	Size        int `json:"size"`
}

// Enveloper is implemented by results that build their own envelope,
// such as paged collections.
type Enveloper interface {
	Envelope() WebResponse
}

// Page is one page of a search result.
type Page[T any] struct {
	Items  []T
	Paging PagingResponse
}

func (p Page[T]) Envelope() WebResponse {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	paging := p.Paging
	return WebResponse{Data: items, Paging: &paging}
}

// NewPage computes the paging block for a 0-based page of the given size.
func NewPage[T any](items []T, page, size int, total int64) Page[T] {
	totalPage := 0
	if size > 0 {
		totalPage = int((total + int64(size) - 1) / int64(size))
	}

	return Page[T]{
		Items: items,
		Paging: PagingResponse{
			CurrentPage: page,
			TotalPage:   totalPage,
			Size:        size,
		},
	}
}

// OK wraps a successful payload.
func OK(data any) WebResponse {
	if e, ok := data.(Enveloper); ok {
		return e.Envelope()
	}
	return WebResponse{Data: data}
}

// Fail wraps an error message.
func Fail(message string) WebResponse {
	return WebResponse{Errors: &message}
}
