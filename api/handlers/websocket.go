package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nivaro-ai/nivaro-launchpad/communication"
	"github.com/nivaro-ai/nivaro-launchpad/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// HandleWebSocket streams platform notifications to the client: the journal
// is replayed first, then new events as they are appended.
func (e *Env) HandleWebSocket(c *gin.Context) {
	log.Printf("New WebSocket connection from %s", c.ClientIP())

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)

	broadcast := func(env core.Envelope) {
		if err := conn.WriteJSON(env); err != nil {
			log.Printf("Error writing to websocket: %v", err)
		}
	}

	log.Printf("Starting journal watcher for %s", e.JournalPath)
	go communication.WatchEventJournal(e.JournalPath, done, broadcast)

	// Keep connection alive and handle disconnection
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("WebSocket connection closed: %v", err)
			break
		}
	}
}
