package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/product-inventory/internal/apperr"
)

// guardedWriter fronts the live connection for handlers running under a
// deadline. Once cut off, writes are swallowed and header access is
// redirected to a throwaway map, so an abandoned handler goroutine can
// never touch the real response again.
type guardedWriter struct {
	mu     sync.Mutex
	dst    http.ResponseWriter
	dead   bool
	wrote  bool
	orphan http.Header
}

func (g *guardedWriter) Header() http.Header {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dead {
		if g.orphan == nil {
			g.orphan = make(http.Header)
		}
		return g.orphan
	}
	return g.dst.Header()
}

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dead {
		return
	}
	g.wrote = true
	g.dst.WriteHeader(code)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dead {
		return len(b), nil
	}
	g.wrote = true
	return g.dst.Write(b)
}

// cutOff severs the handler from the connection and returns the real
// writer for the timeout envelope. It reports false when the handler
// already started its response; in that case the response belongs to the
// handler and no envelope may be emitted.
func (g *guardedWriter) cutOff() (http.ResponseWriter, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.wrote {
		return nil, false
	}
	g.dead = true
	return g.dst, true
}

// Timeout emits a 408 when the handler has not produced a response
// within d. This is a soft timeout: the in-flight handler goroutine is
// abandoned, not cancelled, but it is severed from the connection before
// the envelope is written, so a late handler response lands in a discard
// sink instead of trailing the 408 on the wire. A handler that already
// committed its response is waited for instead; the wire never carries
// two responses.
func Timeout(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			gw := &guardedWriter{dst: c.Response().Writer}
			c.Response().Writer = gw

			done := make(chan error, 1)
			go func() { done <- next(c) }()

			select {
			case err := <-done:
				return err
			case <-time.After(d):
				dst, ok := gw.cutOff()
				if !ok {
					return <-done
				}
				apperr.Write(dst,
					apperr.New(http.StatusRequestTimeout, apperr.CodeRequestTimeout, "request timed out"),
					c.Request().Method, c.Request().URL.Path)
				return nil
			}
		}
	}
}
