// seehuhn.de/go/proposal - compose sales proposals from PDF templates
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package template describes how the pages of a proposal template PDF are
// used.
//
// A [Config] lists every page of the template.  Each [Page] carries a free
// text label and exactly one type-specific sub-configuration: [Suite] for
// pages describing a rentable space, [Overview] for floor plans which
// locate suites, [Conference] for pages with a replaceable text region, and
// [Other] for everything else.
//
// Configurations are treated as immutable snapshots.  All update methods
// return a new Config and leave the receiver unchanged.  Unchanged pages
// are shared between snapshots, so callers must not modify a Config in
// place.
package template

import (
	"errors"
	"fmt"

	"seehuhn.de/go/proposal/geometry"
)

// PageType identifies the kind of a template page.
type PageType int

// These are the supported page types.
const (
	TypeOther PageType = iota
	TypeSuite
	TypeOverview
	TypeConference
)

func (t PageType) String() string {
	switch t {
	case TypeOther:
		return "other"
	case TypeSuite:
		return "suite"
	case TypeOverview:
		return "overview"
	case TypeConference:
		return "conference"
	default:
		return fmt.Sprintf("PageType(%d)", int(t))
	}
}

// ParsePageType converts the textual form of a page type into a PageType.
func ParsePageType(s string) (PageType, error) {
	switch s {
	case "other":
		return TypeOther, nil
	case "suite":
		return TypeSuite, nil
	case "overview":
		return TypeOverview, nil
	case "conference":
		return TypeConference, nil
	}
	return TypeOther, fmt.Errorf("unknown page type %q", s)
}

// Dimensions gives the size of a page in PDF units.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultDimensions is used for synthesized pages when a configuration
// does not specify a page size.
var DefaultDimensions = Dimensions{Width: 540, Height: 779}

// RGB is a colour with 8-bit components.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Components returns the colour as fractions in the range [0, 1].
func (c RGB) Components() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Style is the colour palette used when drawing into exported pages.
type Style struct {
	// BackgroundFill is used to paint over redacted regions and as the
	// background of synthesized pages.
	BackgroundFill RGB `json:"backgroundFill"`

	// BadgeBlue is the primary badge colour.
	BadgeBlue RGB `json:"badgeBlue"`

	// BadgeGray is the secondary badge colour.
	BadgeGray RGB `json:"badgeGray"`
}

// DefaultStyle returns the default colour palette.
func DefaultStyle() Style {
	return Style{
		BackgroundFill: RGB{255, 253, 245},
		BadgeBlue:      RGB{43, 58, 103},
		BadgeGray:      RGB{235, 235, 235},
	}
}

// Config describes a template PDF.
type Config struct {
	ID   string
	Name string

	// PDFStorageKey identifies the template PDF in a binary store.
	PDFStorageKey string

	PageDimensions Dimensions

	// Pages has one entry per page of the template PDF,
	// with Pages[i].Index == i.
	Pages []Page

	Style Style
}

// Page is the configuration of a single template page.
type Page struct {
	// Index is the 0-based position of the page in the template.
	Index int

	Label string

	// Kind holds the type-specific configuration.
	// A nil Kind is equivalent to Other{}.
	Kind Kind
}

// Kind is the type-specific part of a page configuration.
// It is implemented by [Other], [*Suite], [*Overview] and [*Conference].
type Kind interface {
	Type() PageType
	clone() Kind
}

// Other is the configuration of a page without special handling.
type Other struct{}

// Type implements the [Kind] interface.
func (Other) Type() PageType { return TypeOther }

func (o Other) clone() Kind { return o }

// Suite describes a page representing a rentable space.
type Suite struct {
	// OverviewPageIndex is the index of the floor plan page showing this
	// suite, if any.
	OverviewPageIndex *int `json:"overviewPageIndex"`

	// HighlightRects locate the suite on its overview page, in PDF space of
	// the overview page.
	HighlightRects []geometry.Rect `json:"highlightRects"`

	// PriceRedaction gives the regions of the printed prices.
	PriceRedaction *PriceRedaction `json:"priceRedaction"`

	DeskCount *int `json:"deskCount"`
	Rented    bool `json:"rented"`

	ListPrice           *string `json:"listPrice"`
	FoundingMemberPrice *string `json:"foundingMemberPrice"`
}

// PriceRedaction gives the regions on a suite page where the list price
// and the founding member price are printed.
type PriceRedaction struct {
	ListPrice     *geometry.Rect `json:"listPrice"`
	FoundingPrice *geometry.Rect `json:"foundingPrice"`
}

// Complete reports whether both price regions are set.
func (p *PriceRedaction) Complete() bool {
	return p != nil && p.ListPrice != nil && p.FoundingPrice != nil
}

// Type implements the [Kind] interface.
func (*Suite) Type() PageType { return TypeSuite }

func (s *Suite) clone() Kind {
	c := &Suite{
		OverviewPageIndex:   clonePtr(s.OverviewPageIndex),
		DeskCount:           clonePtr(s.DeskCount),
		Rented:              s.Rented,
		ListPrice:           clonePtr(s.ListPrice),
		FoundingMemberPrice: clonePtr(s.FoundingMemberPrice),
	}
	if s.HighlightRects != nil {
		c.HighlightRects = append([]geometry.Rect{}, s.HighlightRects...)
	}
	if s.PriceRedaction != nil {
		c.PriceRedaction = &PriceRedaction{
			ListPrice:     clonePtr(s.PriceRedaction.ListPrice),
			FoundingPrice: clonePtr(s.PriceRedaction.FoundingPrice),
		}
	}
	return c
}

// Desks returns the desk count, or 0 if it is not set.
func (s *Suite) Desks() int {
	if s == nil || s.DeskCount == nil {
		return 0
	}
	return *s.DeskCount
}

// Overview describes a floor plan page.
type Overview struct {
	// SuitePageIndices lists the suite pages shown on this floor plan,
	// in increasing order.
	SuitePageIndices []int `json:"suitePageIndices"`
}

// Type implements the [Kind] interface.
func (*Overview) Type() PageType { return TypeOverview }

func (o *Overview) clone() Kind {
	c := &Overview{}
	if o.SuitePageIndices != nil {
		c.SuitePageIndices = append([]int{}, o.SuitePageIndices...)
	}
	return c
}

// Conference describes a page with a replaceable text region.
type Conference struct {
	TextRedaction *geometry.Rect `json:"textRedaction"`
	DefaultText   *string        `json:"defaultText"`
}

// Type implements the [Kind] interface.
func (*Conference) Type() PageType { return TypeConference }

func (c *Conference) clone() Kind {
	return &Conference{
		TextRedaction: clonePtr(c.TextRedaction),
		DefaultText:   clonePtr(c.DefaultText),
	}
}

// NewKind returns an empty sub-configuration of the given type.
func NewKind(t PageType) Kind {
	switch t {
	case TypeSuite:
		return &Suite{HighlightRects: []geometry.Rect{}}
	case TypeOverview:
		return &Overview{SuitePageIndices: []int{}}
	case TypeConference:
		return &Conference{}
	default:
		return Other{}
	}
}

// Type returns the type of the page.
func (p *Page) Type() PageType {
	if p.Kind == nil {
		return TypeOther
	}
	return p.Kind.Type()
}

// Suite returns the suite configuration of the page,
// or nil if the page is not a suite page.
func (p *Page) Suite() *Suite {
	s, _ := p.Kind.(*Suite)
	return s
}

// Overview returns the floor plan configuration of the page,
// or nil if the page is not an overview page.
func (p *Page) Overview() *Overview {
	o, _ := p.Kind.(*Overview)
	return o
}

// Conference returns the conference configuration of the page,
// or nil if the page is not a conference page.
func (p *Page) Conference() *Conference {
	c, _ := p.Kind.(*Conference)
	return c
}

func (p Page) clone() Page {
	p.Kind = cloneKind(p.Kind)
	return p
}

// cloneKind returns a deep copy of k.  Nil values are replaced by empty
// sub-configurations of the corresponding type.
func cloneKind(k Kind) Kind {
	switch k := k.(type) {
	case nil:
		return Other{}
	case *Suite:
		if k == nil {
			return NewKind(TypeSuite)
		}
	case *Overview:
		if k == nil {
			return NewKind(TypeOverview)
		}
	case *Conference:
		if k == nil {
			return NewKind(TypeConference)
		}
	}
	return k.clone()
}

// CreateBlank returns the configuration for a newly uploaded template with
// the given number of pages.  All pages have type "other".
func CreateBlank(id, name string, pageCount int, dims Dimensions) *Config {
	pages := make([]Page, pageCount)
	for i := range pages {
		pages[i] = Page{
			Index: i,
			Label: fmt.Sprintf("Page %d", i+1),
			Kind:  Other{},
		}
	}
	return &Config{
		ID:             id,
		Name:           name,
		PDFStorageKey:  id,
		PageDimensions: dims,
		Pages:          pages,
		Style:          DefaultStyle(),
	}
}

// Page returns the configuration of the page with the given 0-based index.
// The second return value is false if the index is out of range.
func (c *Config) Page(idx int) (*Page, bool) {
	if c == nil || idx < 0 || idx >= len(c.Pages) {
		return nil, false
	}
	return &c.Pages[idx], true
}

// PageByNumber returns the configuration of the page with the given
// 1-based page number.
func (c *Config) PageByNumber(pageNo int) (*Page, bool) {
	return c.Page(pageNo - 1)
}

// TypeOf returns the type of the page with the given 1-based page number.
// Pages outside the configuration have type "other".
func (c *Config) TypeOf(pageNo int) PageType {
	p, ok := c.PageByNumber(pageNo)
	if !ok {
		return TypeOther
	}
	return p.Type()
}

// SummaryDimensions returns the page size used for synthesized pages.
func (c *Config) SummaryDimensions() Dimensions {
	if c == nil || c.PageDimensions.Width <= 0 || c.PageDimensions.Height <= 0 {
		return DefaultDimensions
	}
	return c.PageDimensions
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	res := *c
	res.Pages = make([]Page, len(c.Pages))
	for i, p := range c.Pages {
		res.Pages[i] = p.clone()
	}
	return &res
}

var (
	// ErrPageRange indicates a page index outside the configuration.
	ErrPageRange = errors.New("page index out of range")

	// ErrWrongType indicates an operation which is not valid for the type
	// of the page.
	ErrWrongType = errors.New("wrong page type")
)

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
