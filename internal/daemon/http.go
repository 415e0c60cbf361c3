package daemon

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const streamBuffer = 16

func (s *Service) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(s.requestLogger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok\n")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	v1 := e.Group("/v1")
	v1.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.status())
	})
	v1.GET("/clients", func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.currentClients())
	})
	v1.GET("/events", func(c echo.Context) error {
		return c.JSON(http.StatusOK, s.feed.history())
	})
	v1.GET("/stream", s.stream)
	return e
}

func (s *Service) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Debug("http request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("took", time.Since(start)),
		)
		return err
	}
}

// stream serves server-sent events: the current snapshot first, then every
// event the feed emits until the client disconnects.
func (s *Service) stream(c echo.Context) error {
	events, cancel := s.feed.subscribe(streamBuffer)
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	s.mu.RLock()
	current := s.snapshot
	s.mu.RUnlock()
	if err := writeSSE(res, Event{Type: EventSnapshot, Timestamp: time.Now(), Snapshot: current}); err != nil {
		return nil
	}
	res.Flush()

	done := c.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case ev := <-events:
			if err := writeSSE(res, ev); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeSSE(w io.Writer, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return err
}
