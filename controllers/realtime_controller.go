package controllers

import (
	"net/http"

	"github.com/liyunrui/meal-prep/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	hub *services.TotalsHub
}

func NewRealtimeController(hub *services.TotalsHub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// TotalsWS keeps a websocket open per client and receives the user's
// recomputed daily totals whenever an entry or target changes.
func (rc *RealtimeController) TotalsWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := services.NewTotalsClient(uid, conn)
	rc.hub.Register(client)
	go client.WritePump()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.hub.Unregister(client)
			return
		}
	}
}
