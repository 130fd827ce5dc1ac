package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chainsync/chainsync-lite/internal/application/changefeed"
)

// EventsHandler expone el feed de cambios como Server-Sent Events (protegido).
// Un evento por mutación confirmada: colección + acción, sin payload. El
// cliente relee la colección afectada; la consistencia es eventual.
type EventsHandler struct {
	feed *changefeed.Feed
}

// NewEventsHandler construye el handler.
func NewEventsHandler(feed *changefeed.Feed) *EventsHandler {
	return &EventsHandler{feed: feed}
}

// Stream godoc
// @Summary      Feed de cambios (SSE)
// @Description  Emite un evento por mutación confirmada del dueño. Suscriptores
//               lentos pierden eventos en lugar de bloquear las escrituras.
// @Tags         events
// @Security     Bearer
// @Produce      text/event-stream
// @Param        collections  query  string  false  "CSV de colecciones (inventory,sales,audit,settings); vacío = todas"
// @Success      200  {string}  string  "stream"
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)

	var collections []string
	if raw := c.Query("collections"); raw != "" {
		for _, col := range strings.Split(raw, ",") {
			if col = strings.TrimSpace(col); col != "" {
				collections = append(collections, col)
			}
		}
	}

	events, unsubscribe := h.feed.Subscribe(ownerID, collections...)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			case <-keepalive.C:
				// Comentario SSE: mantiene viva la conexión y detecta cortes.
				fmt.Fprint(w, ": keepalive\n\n")
			}
			if err := w.Flush(); err != nil {
				// Cliente desconectado.
				return
			}
		}
	})
	return nil
}
