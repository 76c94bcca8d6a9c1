package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"complaint-service/internal/auth"
	"complaint-service/internal/chat"
	"complaint-service/internal/dialogue"
	"complaint-service/internal/http/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChatDeps are the collaborators the websocket intake needs beyond what the
// REST handler holds.
type ChatDeps struct {
	Denylist *auth.Denylist
}

// serveChat upgrades the connection and runs one dialogue session for its
// lifetime. The draft lives and dies with the connection.
func (h *Handler) serveChat(deps ChatDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.MustClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Debug().Err(err).Msg("websocket upgrade failed")
			return
		}

		gateway := chat.NewServiceGateway(h.complaintService, deps.Denylist, claims)
		session := dialogue.NewSession(gateway)
		client := chat.NewClient(conn, session, h.log.With().Int64("user_id", claims.UserID).Logger())
		client.Run(c.Request.Context())
	}
}
