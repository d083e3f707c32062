// Package pagination holds the one page envelope served to clients and the
// adapters that build it, either from a service result or from the payloads
// of the previous system.
package pagination

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// DefaultPerPage is the fixed reporting page size.
const DefaultPerPage = 15

var ErrUnknownShape = errors.New("unrecognized pagination payload")

// Result is the flat shape services return: the items of one page plus counts.
type Result[T any] struct {
	Items   []T
	Total   int64
	Page    int
	PerPage int
}

// LastPage is never below 1, so an empty result still has a first page.
func (r Result[T]) LastPage() int {
	if r.PerPage <= 0 || r.Total == 0 {
		return 1
	}
	return int(math.Ceil(float64(r.Total) / float64(r.PerPage)))
}

// Map converts the items of r with fn, keeping the counts.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	items := make([]U, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, fn(item))
	}
	return Result[U]{Items: items, Total: r.Total, Page: r.Page, PerPage: r.PerPage}
}

type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type Meta struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int   `json:"to"`
	Total       int64  `json:"total"`
}

type Page[T any] struct {
	Data  []T   `json:"data"`
	Links Links `json:"links"`
	Meta  Meta  `json:"meta"`
}

// New builds the client envelope for r. Links point at base with every query
// parameter preserved except page.
func New[T any](r Result[T], base *url.URL) Page[T] {
	lastPage := r.LastPage()
	path := pathOf(base)

	page := Page[T]{
		Data: r.Items,
		Links: Links{
			First: pageURL(base, path, 1),
			Last:  pageURL(base, path, lastPage),
		},
		Meta: Meta{
			CurrentPage: r.Page,
			LastPage:    lastPage,
			Path:        path,
			PerPage:     r.PerPage,
			Total:       r.Total,
		},
	}
	if page.Data == nil {
		page.Data = []T{}
	}

	if r.Page > 1 {
		prev := pageURL(base, path, min(r.Page-1, lastPage))
		page.Links.Prev = &prev
	}
	if r.Page < lastPage {
		next := pageURL(base, path, r.Page+1)
		page.Links.Next = &next
	}

	if len(r.Items) > 0 {
		from := (r.Page-1)*r.PerPage + 1
		to := from + len(r.Items) - 1
		page.Meta.From = &from
		page.Meta.To = &to
	}

	return page
}

func pathOf(base *url.URL) string {
	if base == nil {
		return ""
	}
	u := *base
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func pageURL(base *url.URL, path string, n int) string {
	q := url.Values{}
	if base != nil {
		q = base.Query()
	}
	q.Set("page", strconv.Itoa(n))
	return path + "?" + q.Encode()
}

// envelope is the data/links/meta resource shape.
type envelope[T any] struct {
	Data  []T   `json:"data"`
	Links Links `json:"links"`
	Meta  Meta  `json:"meta"`
}

// flat is the paginator shape of the previous backend, where counters and
// page URLs sit next to data and "links" is a list of navigation buttons.
type flat[T any] struct {
	CurrentPage  int     `json:"current_page"`
	Data         []T     `json:"data"`
	FirstPageURL string  `json:"first_page_url"`
	From         *int    `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           *int    `json:"to"`
	Total        int64   `json:"total"`
}

type probe struct {
	Meta        json.RawMessage `json:"meta"`
	CurrentPage json.RawMessage `json:"current_page"`
}

// Decode normalizes a payload in any known external shape into a Page:
// the data/links/meta envelope, the flat paginator, or a bare JSON array
// (an unpaginated listing, treated as a single page).
func Decode[T any](raw []byte) (Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Page[T]{}, ErrUnknownShape
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("decode array page: %w", err)
		}
		return New(Result[T]{Items: items, Total: int64(len(items)), Page: 1, PerPage: len(items)}, nil), nil
	}

	var p probe
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return Page[T]{}, fmt.Errorf("decode page: %w", err)
	}

	switch {
	case isPresent(p.Meta):
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return Page[T]{}, fmt.Errorf("decode envelope page: %w", err)
		}
		page := Page[T](env)
		if page.Data == nil {
			page.Data = []T{}
		}
		return page, nil

	case isPresent(p.CurrentPage):
		var f flat[T]
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return Page[T]{}, fmt.Errorf("decode flat page: %w", err)
		}
		page := Page[T]{
			Data: f.Data,
			Links: Links{
				First: f.FirstPageURL,
				Last:  f.LastPageURL,
				Prev:  f.PrevPageURL,
				Next:  f.NextPageURL,
			},
			Meta: Meta{
				CurrentPage: f.CurrentPage,
				From:        f.From,
				LastPage:    f.LastPage,
				Path:        f.Path,
				PerPage:     f.PerPage,
				To:          f.To,
				Total:       f.Total,
			},
		}
		if page.Data == nil {
			page.Data = []T{}
		}
		return page, nil
	}

	return Page[T]{}, ErrUnknownShape
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
