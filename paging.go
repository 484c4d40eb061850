package client

// Page is one page of a listing.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
}
