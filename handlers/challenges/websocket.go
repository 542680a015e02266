package challenges

import (
	"log"
	"net/http"

	"pqapi/realtime"
	"pqapi/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChallengeWebSocket streams scoreboard updates for a challenge
// @Summary Watch a challenge
// @Description Open a WebSocket that receives scoreboard updates for the challenge
// @Tags Challenges
// @Param id path int true "Challenge ID"
// @Router /challenges/{id}/ws [get]
func ChallengeWebSocket(c *gin.Context) {
	challengeID, err := parseID(c, "id")
	if err != nil {
		return
	}
	if _, err := services.GetVisibleChallenge(challengeID, nil); err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterClient(challengeID, conn)
	defer func() {
		realtime.UnregisterClient(challengeID, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
