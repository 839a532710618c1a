package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// WSMessage is a JSON text frame sent during a websocket render. The image
// itself follows as a single binary frame before the "complete" message.
type WSMessage struct {
	Type      string `json:"type"` // "progress", "complete", "error"
	Row       int    `json:"row,omitempty"`
	Completed int    `json:"completed,omitempty"`
	Total     int    `json:"total,omitempty"`
	Stats     *Stats `json:"stats,omitempty"`
	Error     string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleRenderWS renders like handleRender but streams row progress over a
// websocket, then sends the PNG as a binary message
func (s *Server) handleRenderWS(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Progress is reported on this goroutine, so writes never overlap.
	var writeErr error
	onRow := func(row, completed, total int) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(WSMessage{Type: "progress", Row: row, Completed: completed, Total: total})
	}

	data, stats, err := s.render(req, onRow)
	if err != nil {
		s.logger.Warn().Err(err).Str("scene", req.Scene).Msg("websocket render failed")
		conn.WriteJSON(WSMessage{Type: "error", Error: err.Error()})
		return
	}
	if writeErr != nil {
		s.logger.Debug().Err(writeErr).Msg("client went away during render")
		return
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		s.logger.Debug().Err(err).Msg("sending image failed")
		return
	}
	if err := conn.WriteJSON(WSMessage{Type: "complete", Stats: &stats}); err != nil {
		s.logger.Debug().Err(err).Msg("sending completion failed")
		return
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
