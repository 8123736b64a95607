package web

import (
	"bufio"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/moodcam/pkg/hub"
	"github.com/teslashibe/moodcam/pkg/resolver"
)

// captureError is the body returned when no reading could be produced.
var captureError = fiber.Map{"error": "Could not capture frame"}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	page, err := render("index.html", indexPage{
		Title:  "Emotion Advice",
		Status: s.resolver.Status(),
	})
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(page)
}

// handleVideoFeed streams JPEG frames as multipart/x-mixed-replace until the
// client disconnects or the server shuts down.
func (s *Server) handleVideoFeed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, StreamContentType)
	c.Set(fiber.HeaderCacheControl, "no-cache, private")

	interval := time.Second / time.Duration(s.cfg.StreamFPS)
	limit := s.cfg.MaxStreamFrames
	ctx := s.ctx
	lg := s.logger

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		lg.Debug("stream opened")
		defer lg.Debug("stream closed")

		for tick := 0; limit == 0 || tick < limit; tick++ {
			frame, err := s.resolver.StreamFrame(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				lg.Warn("stream frame failed", "error", err)
			} else {
				if err := WritePart(w, frame); err != nil {
					return
				}
				// Flush fails once the client has gone away.
				if err := w.Flush(); err != nil {
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	})
	return nil
}

// handleGetAdvice renders the result page, or JSON when asked for it.
func (s *Server) handleGetAdvice(c *fiber.Ctx) error {
	res, err := s.resolve(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(captureError)
	}

	if wantsJSON(c) {
		return c.JSON(newReadingResponse(res))
	}

	page, err := render("result.html", newResultPage(res))
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(page)
}

func (s *Server) handleReading(c *fiber.Ctx) error {
	res, err := s.resolve(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(captureError)
	}
	return c.JSON(newReadingResponse(res))
}

func (s *Server) resolve(c *fiber.Ctx) (*resolver.Result, error) {
	res, err := s.resolver.Resolve(c.UserContext())
	if err != nil {
		s.logger.Error("reading failed", "error", err)
		return nil, err
	}
	if s.readings != nil {
		if err := s.readings.BroadcastJSON(res.Event()); err != nil {
			s.logger.Warn("broadcast failed", "error", err)
		}
	}
	return res, nil
}

type statusResponse struct {
	resolver.Status
	Subscribers int `json:"subscribers"`
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	resp := statusResponse{Status: s.resolver.Status()}
	if s.readings != nil {
		resp.Subscribers = s.readings.ClientCount()
	}
	return c.JSON(resp)
}

func (s *Server) handleLabels(c *fiber.Ctx) error {
	return c.JSON(s.resolver.Labels())
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"mode":   s.resolver.Status().Mode,
	})
}

func (s *Server) handleReadingsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.ctx, s.readings, conn)
	if client == nil {
		conn.Close()
		return
	}
	client.Run()
}

// readingResponse is a Result with its image inlined as base64.
type readingResponse struct {
	*resolver.Result
	Image string `json:"image"`
}

func newReadingResponse(res *resolver.Result) readingResponse {
	return readingResponse{Result: res, Image: res.ImageBase64()}
}

func wantsJSON(c *fiber.Ctx) bool {
	if c.Query("format") == "json" {
		return true
	}
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
