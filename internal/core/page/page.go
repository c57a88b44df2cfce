// Package page defines the pagination primitives shared by record sources and
// the browser: page requests, fetched results and the fetcher contract.
package page

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/pagepick/internal/core/selection"
)

const (
	DefaultPageSize = 25
	MinPageSize     = 1
	MaxPageSize     = 1000
	FirstPage       = 1
)

var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = fmt.Errorf("page size must be between %d and %d", MinPageSize, MaxPageSize)
)

// Request identifies one server-side page. Number is 1-based.
type Request struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
}

// Validate reports whether the request can be sent to a fetcher.
func (r Request) Validate() error {
	if r.Number < FirstPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, r.Number)
	}
	if r.Size < MinPageSize || r.Size > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, r.Size)
	}
	return nil
}

// Offset is the zero-based index of the first item on the page.
func (r Request) Offset() int {
	return (r.Number - 1) * r.Size
}

// FirstPosition is the global position of the first row on the page.
func (r Request) FirstPosition() selection.Position {
	return selection.Position(r.Offset() + 1)
}

// Position returns the global position of the item at index on the page.
func (r Request) Position(index int) selection.Position {
	return selection.Position(r.Offset() + index + 1)
}

// Record is an opaque item payload. Only ID and Title are interpreted, the
// remaining data is carried through Fields for display.
type Record struct {
	ID     string         `json:"id"               yaml:"id"               toml:"id"`
	Title  string         `json:"title"            yaml:"title"            toml:"title"`
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
}

// Result is one fetched page. Total is the size of the whole collection when
// the source knows it, or -1 when it does not.
type Result struct {
	Records []Record `json:"items"`
	Total   int      `json:"total"`
}

// TotalUnknown marks a Result whose source cannot count the collection.
const TotalUnknown = -1

// Fetcher retrieves a page of records. Implementations must be safe for
// concurrent use. Failures are returned to the caller and never retried here.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Result, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req Request) (Result, error)

func (f FetcherFunc) Fetch(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

// Entries assigns global positions to the records of a fetched page.
func Entries(req Request, records []Record) []selection.Entry[Record] {
	out := make([]selection.Entry[Record], len(records))
	for i, rec := range records {
		out[i] = selection.Entry[Record]{
			Position: req.Position(i),
			Payload:  rec,
		}
	}
	return out
}

// Positions returns the global positions covered by the given entries.
func Positions(entries []selection.Entry[Record]) []selection.Position {
	out := make([]selection.Position, len(entries))
	for i, e := range entries {
		out[i] = e.Position
	}
	return out
}
