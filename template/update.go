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

package template

import (
	"fmt"
	"slices"

	"seehuhn.de/go/proposal/geometry"
)

// WithPageUpdate returns a new configuration where the page with index idx
// has been modified by update.  The update function operates on a private
// copy of the page; c itself is not changed.
//
// The update function must not change the page index.
func (c *Config) WithPageUpdate(idx int, update func(p *Page)) (*Config, error) {
	if _, ok := c.Page(idx); !ok {
		return nil, fmt.Errorf("page %d: %w", idx, ErrPageRange)
	}

	p := c.Pages[idx].clone()
	update(&p)
	if p.Index != idx {
		return nil, fmt.Errorf("page %d: index cannot be changed to %d", idx, p.Index)
	}
	if p.Kind == nil {
		p.Kind = Other{}
	}

	res := *c
	res.Pages = slices.Clone(c.Pages)
	res.Pages[idx] = p
	return &res, nil
}

// ChangePageType returns a new configuration where the page with index idx
// has type t.
//
// If the page already has type t, only missing fields of the sub-config
// are filled in and populated fields are kept.  Otherwise the previous
// sub-config is discarded and replaced by an empty one of type t.
// The page label is preserved in both cases.
func (c *Config) ChangePageType(idx int, t PageType) (*Config, error) {
	switch t {
	case TypeOther, TypeSuite, TypeOverview, TypeConference:
	default:
		return nil, fmt.Errorf("page %d: invalid page type %s", idx, t)
	}
	return c.WithPageUpdate(idx, func(p *Page) {
		if p.Type() != t {
			p.Kind = NewKind(t)
			return
		}
		fillDefaults(p.Kind)
	})
}

func fillDefaults(k Kind) {
	switch k := k.(type) {
	case *Suite:
		if k.HighlightRects == nil {
			k.HighlightRects = []geometry.Rect{}
		}
	case *Overview:
		if k.SuitePageIndices == nil {
			k.SuitePageIndices = []int{}
		}
	}
}

// SetLabel returns a new configuration where page idx has the given label.
func (c *Config) SetLabel(idx int, label string) (*Config, error) {
	return c.WithPageUpdate(idx, func(p *Page) {
		p.Label = label
	})
}

// UpdateSuite returns a new configuration where the suite configuration of
// page idx has been modified by update.
func (c *Config) UpdateSuite(idx int, update func(s *Suite)) (*Config, error) {
	if err := c.checkType(idx, TypeSuite); err != nil {
		return nil, err
	}
	return c.WithPageUpdate(idx, func(p *Page) {
		update(p.Suite())
	})
}

// UpdateOverview returns a new configuration where the floor plan
// configuration of page idx has been modified by update.
// The suite indices are re-sorted afterwards.
func (c *Config) UpdateOverview(idx int, update func(o *Overview)) (*Config, error) {
	if err := c.checkType(idx, TypeOverview); err != nil {
		return nil, err
	}
	return c.WithPageUpdate(idx, func(p *Page) {
		o := p.Overview()
		update(o)
		o.SuitePageIndices = sortedUnique(o.SuitePageIndices)
	})
}

// UpdateConference returns a new configuration where the conference
// configuration of page idx has been modified by update.
func (c *Config) UpdateConference(idx int, update func(cc *Conference)) (*Config, error) {
	if err := c.checkType(idx, TypeConference); err != nil {
		return nil, err
	}
	return c.WithPageUpdate(idx, func(p *Page) {
		update(p.Conference())
	})
}

func (c *Config) checkType(idx int, want PageType) error {
	p, ok := c.Page(idx)
	if !ok {
		return fmt.Errorf("page %d: %w", idx, ErrPageRange)
	}
	if got := p.Type(); got != want {
		return fmt.Errorf("page %d is %s, not %s: %w", idx, got, want, ErrWrongType)
	}
	return nil
}

// AddHighlightRect appends a highlight rectangle to suite page idx.
func (c *Config) AddHighlightRect(idx int, r geometry.Rect) (*Config, error) {
	return c.UpdateSuite(idx, func(s *Suite) {
		s.HighlightRects = append(s.HighlightRects, r)
	})
}

// DeleteHighlightRect removes the i-th highlight rectangle of suite page idx.
func (c *Config) DeleteHighlightRect(idx, i int) (*Config, error) {
	p, ok := c.Page(idx)
	if ok && p.Type() == TypeSuite {
		if n := len(p.Suite().HighlightRects); i < 0 || i >= n {
			return nil, fmt.Errorf("page %d: highlight %d of %d: %w", idx, i, n, ErrPageRange)
		}
	}
	return c.UpdateSuite(idx, func(s *Suite) {
		s.HighlightRects = slices.Delete(s.HighlightRects, i, i+1)
	})
}

// PriceField selects one of the two price regions of a suite page.
type PriceField int

// These are the price regions of a suite page.
const (
	ListPriceField PriceField = iota
	FoundingPriceField
)

// SetPriceRect sets or, if r is nil, clears a price region of suite page idx.
func (c *Config) SetPriceRect(idx int, field PriceField, r *geometry.Rect) (*Config, error) {
	return c.UpdateSuite(idx, func(s *Suite) {
		if s.PriceRedaction == nil {
			s.PriceRedaction = &PriceRedaction{}
		}
		switch field {
		case ListPriceField:
			s.PriceRedaction.ListPrice = clonePtr(r)
		case FoundingPriceField:
			s.PriceRedaction.FoundingPrice = clonePtr(r)
		}
	})
}

// SetTextRedaction sets or, if r is nil, clears the text region of
// conference page idx.
func (c *Config) SetTextRedaction(idx int, r *geometry.Rect) (*Config, error) {
	return c.UpdateConference(idx, func(cc *Conference) {
		cc.TextRedaction = clonePtr(r)
	})
}

// SetOverviewForSuite sets the floor plan page of suite page suiteIdx.
// A negative overviewIdx clears the link.
func (c *Config) SetOverviewForSuite(suiteIdx, overviewIdx int) (*Config, error) {
	if overviewIdx >= 0 {
		if err := c.checkType(overviewIdx, TypeOverview); err != nil {
			return nil, err
		}
	}
	return c.UpdateSuite(suiteIdx, func(s *Suite) {
		if overviewIdx < 0 {
			s.OverviewPageIndex = nil
		} else {
			s.OverviewPageIndex = &overviewIdx
		}
	})
}

// ToggleSuiteLink adds suite page suiteIdx to the floor plan on page
// overviewIdx, or removes it if it is already present.  The suite indices
// of the floor plan stay sorted.  When a link is added, the back-reference
// of the suite page is set to the floor plan; when it is removed, a
// back-reference to this floor plan is cleared.
func (c *Config) ToggleSuiteLink(overviewIdx, suiteIdx int) (*Config, error) {
	if err := c.checkType(suiteIdx, TypeSuite); err != nil {
		return nil, err
	}
	o, err := c.overview(overviewIdx)
	if err != nil {
		return nil, err
	}
	linked := slices.Contains(o.SuitePageIndices, suiteIdx)

	res, err := c.UpdateOverview(overviewIdx, func(o *Overview) {
		if linked {
			o.SuitePageIndices = slices.DeleteFunc(o.SuitePageIndices, func(i int) bool {
				return i == suiteIdx
			})
		} else {
			o.SuitePageIndices = append(o.SuitePageIndices, suiteIdx)
		}
	})
	if err != nil {
		return nil, err
	}

	return res.UpdateSuite(suiteIdx, func(s *Suite) {
		switch {
		case !linked:
			s.OverviewPageIndex = &overviewIdx
		case s.OverviewPageIndex != nil && *s.OverviewPageIndex == overviewIdx:
			s.OverviewPageIndex = nil
		}
	})
}

func (c *Config) overview(idx int) (*Overview, error) {
	if err := c.checkType(idx, TypeOverview); err != nil {
		return nil, err
	}
	return c.Pages[idx].Overview(), nil
}

func sortedUnique(xx []int) []int {
	res := slices.Clone(xx)
	if res == nil {
		res = []int{}
	}
	slices.Sort(res)
	return slices.Compact(res)
}
