package cache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type bufferingWriter struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Key builds the cache key for a request: feed path plus page number.
func Key(path, page string) string {
	return path + "?page=" + page
}

// Middleware serves GET responses from the page cache and stores fresh
// renders for ttl. Apply it only to routes whose staleness window is
// acceptable; nothing here invalidates on mutation.
func Middleware(pc PageCache, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := Key(c.Request().URL.Path, c.QueryParam("page"))
			ctx := c.Request().Context()

			if entry, ok, err := pc.Get(ctx, key); err == nil && ok {
				return c.Blob(http.StatusOK, entry.ContentType, entry.Body)
			}

			buf := new(bytes.Buffer)
			c.Response().Writer = &bufferingWriter{ResponseWriter: c.Response().Writer, buf: buf}

			if err := next(c); err != nil {
				return err
			}

			if c.Response().Status == http.StatusOK {
				entry := &Entry{
					Body:        buf.Bytes(),
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
				}
				if err := pc.Set(ctx, key, entry, ttl); err != nil {
					c.Logger().Warnf("page cache store failed: %v", err)
				}
			}
			return nil
		}
	}
}
