// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package keepalive tracks request activity and pings the service when it
// has been idle, keeping hosted instances from being put to sleep.
package keepalive

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Tracker records when the service last handled a request.
type Tracker struct {
	mu       sync.RWMutex
	lastSeen time.Time
	now      func() time.Time
}

// NewTracker creates a Tracker whose last activity is now.
func NewTracker() *Tracker {
	return newTracker(time.Now)
}

func newTracker(
	now func() time.Time,
) *Tracker {
	return &Tracker{
		lastSeen: now(),
		now:      now,
	}
}

// Touch marks activity at the current time.
func (t *Tracker) Touch() {
	t.mu.Lock()
	t.lastSeen = t.now()
	t.mu.Unlock()
}

// LastSeen returns the time of the last activity.
func (t *Tracker) LastSeen() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.lastSeen
}

// IdleFor returns how long the service has been without activity.
func (t *Tracker) IdleFor() time.Duration {
	return t.now().Sub(t.LastSeen())
}

// Middleware touches the tracker on every request.
func (t *Tracker) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t.Touch()
			return next(c)
		}
	}
}
