package pagination

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Params holds validated pagination parameters.
type Params struct {
	Page    int
	PerPage int
}

// Parse extracts page/per_page from query parameters, falling back to
// defaults and capping the page size.
func Parse(c *gin.Context) Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Window is the half-open slice [Offset, Offset+Limit) applied to a result
// set of the counted size.
type Window struct {
	Offset int
	Limit  int
}

// Meta is the pagination metadata block returned alongside results.
type Meta struct {
	Count        int  `json:"count"`
	NumPages     int  `json:"num_pages"`
	CurrentPage  int  `json:"current_page"`
	PreviousPage *int `json:"previous_page"`
	NextPage     *int `json:"next_page"`
	PerPage      int  `json:"per_page"`
}

// NumPages computes the total page count for the given total.
func (p Params) NumPages(count int) int {
	if count == 0 {
		return 0
	}
	return (count + p.PerPage - 1) / p.PerPage
}

// Window computes the slice for the requested page. Requesting a page beyond
// the last one is a reported out-of-range error, not an empty page.
func (p Params) Window(count int) (Window, error) {
	numPages := p.NumPages(count)
	if p.Page > numPages && numPages > 0 {
		return Window{}, apperrors.NewAppError(
			apperrors.ErrPageOutOfRange,
			fmt.Sprintf("page %d exceeds the maximum page %d", p.Page, numPages),
			nil,
		)
	}
	bottom := (p.Page - 1) * p.PerPage
	top := bottom + p.PerPage
	if top > count {
		top = count
	}
	if bottom > count {
		bottom = count
	}
	return Window{Offset: bottom, Limit: top - bottom}, nil
}

// Meta builds the metadata block for the requested page.
func (p Params) Meta(count int) Meta {
	numPages := p.NumPages(count)
	m := Meta{
		Count:       count,
		NumPages:    numPages,
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
	}
	if p.Page > 1 {
		prev := p.Page - 1
		m.PreviousPage = &prev
	}
	if p.Page < numPages {
		next := p.Page + 1
		m.NextPage = &next
	}
	return m
}
