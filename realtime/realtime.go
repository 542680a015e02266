package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	challengeClients = make(map[uint]map[*websocket.Conn]bool) // challenge id -> connected clients
	broadcast        = make(chan ScoreboardUpdate)
	mutex            sync.Mutex
)

// ScoreboardUpdate announces a completed solution to challenge watchers
type ScoreboardUpdate struct {
	ChallengeID uint        `json:"challenge_id"`
	Username    string      `json:"username"`
	SetID       uint        `json:"set_id"`
	Scoreboard  interface{} `json:"scoreboard"`
}

// RegisterClient adds a WebSocket client watching a specific challenge
func RegisterClient(challengeID uint, conn *websocket.Conn) {
	mutex.Lock()
	if challengeClients[challengeID] == nil {
		challengeClients[challengeID] = make(map[*websocket.Conn]bool)
	}
	challengeClients[challengeID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific challenge
func UnregisterClient(challengeID uint, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := challengeClients[challengeID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(challengeClients, challengeID)
		}
	}
	mutex.Unlock()
}

// BroadcastScoreboardUpdate sends an update to all clients watching the
// challenge
func BroadcastScoreboardUpdate(update ScoreboardUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := challengeClients[update.ChallengeID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
