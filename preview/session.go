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

package preview

import (
	"context"
	"errors"
	"sync"

	"seehuhn.de/go/proposal/compose"
	"seehuhn.de/go/proposal/template"
)

// ErrStale is returned by [Session.Render] if a newer render was started
// before this one finished.
var ErrStale = errors.New("preview superseded by a newer request")

// A Session keeps the most recent preview of a changing selection.
//
// Every call to Render starts a new generation and cancels the render of
// the previous generation, if it is still running.  A result is only
// stored if no newer generation has been started in the meantime, so an
// old result can never replace a newer one.
type Session struct {
	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	current   *Result
	currentAt uint64
}

// Begin starts a new generation.  The returned context is cancelled when
// the next generation starts.
func (s *Session) Begin(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	ctx, s.cancel = context.WithCancel(ctx)
	return ctx, s.gen
}

// Commit stores res as the current preview, if gen is still the newest
// generation.  The return value indicates whether res was stored.
func (s *Session) Commit(gen uint64, res *Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || gen <= s.currentAt {
		return false
	}
	s.current = res
	s.currentAt = gen
	return true
}

// Current returns the most recently committed preview, or nil if there
// is none.
func (s *Session) Current() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Render renders a preview as a new generation of the session.
func (s *Session) Render(ctx context.Context, tmpl []byte, req *compose.Request, cfg *template.Config, opt *Options) (*Result, error) {
	ctx, gen := s.Begin(ctx)
	res, err := Render(ctx, tmpl, req, cfg, opt)
	if err != nil {
		if errors.Is(err, context.Canceled) && !s.isCurrent(gen) {
			return nil, ErrStale
		}
		return nil, err
	}
	if !s.Commit(gen, res) {
		return nil, ErrStale
	}
	return res, nil
}

func (s *Session) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}

// Close cancels a render which is still in progress.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
