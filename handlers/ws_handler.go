package handlers

import (
	"net/http"
	"slices"
	"time"

	"postapi/logger"
	"postapi/models"
	"postapi/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketHandler streams post events to subscribers.
type WebSocketHandler struct {
	hubService *services.HubService
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler accepts every origin when allowedOrigins is empty.
func NewWebSocketHandler(hubService *services.HubService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hubService: hubService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowedOrigins) == 0 || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (wh *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("Failed to upgrade connection", "error", err)
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn)
	log.Info("Post event subscriber connected", "client_id", client.ID, "client_ip", c.ClientIP())

	select {
	case client.Hub.Register <- client:
	case <-client.Hub.Done:
		conn.Close()
		return
	}
	go wh.writePump(client)
	go wh.readPump(client)
}

// readPump only drains control frames; subscribers never send data.
func (wh *WebSocketHandler) readPump(client *models.Client) {
	log := logger.GetDefault()
	defer func() {
		log.Debug("Subscriber disconnecting", "client_id", client.ID)
		select {
		case client.Hub.Unregister <- client:
		case <-client.Hub.Done:
		}
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("Unexpected close", "client_id", client.ID, "error", err)
			}
			return
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	log := logger.GetDefault()
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug("Write failed", "client_id", client.ID, "error", err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("Ping failed", "client_id", client.ID, "error", err)
				return
			}
		}
	}
}
