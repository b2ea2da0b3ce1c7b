package services

import (
	"context"
	"encoding/json"

	"postapi/logger"
	"postapi/models"
)

// HubService fans post events out to websocket subscribers. A single
// goroutine owns the client set.
type HubService struct {
	hub *models.Hub
}

func NewHubService(ctx context.Context) *HubService {
	service := &HubService{hub: models.NewHub()}

	go service.Run(ctx)

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) Run(ctx context.Context) {
	log := logger.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			close(h.hub.Done)
			for client := range h.hub.Clients {
				delete(h.hub.Clients, client)
				close(client.Send)
			}
			log.Debug("Post event hub stopped")
			return

		case client := <-h.hub.Register:
			h.hub.Clients[client] = true
			log.Debug("Subscriber registered", "client_id", client.ID, "subscribers", len(h.hub.Clients))

		case client := <-h.hub.Unregister:
			if _, ok := h.hub.Clients[client]; ok {
				delete(h.hub.Clients, client)
				close(client.Send)
				log.Debug("Subscriber unregistered", "client_id", client.ID)
			}

		case message := <-h.hub.Broadcast:
			h.broadcastToAll(message)
		}
	}
}

func (h *HubService) broadcastToAll(message []byte) {
	for client := range h.hub.Clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.hub.Clients, client)
		}
	}
}

// Notify implements PostNotifier. It never blocks the request path: when the
// broadcast queue is full the event is dropped.
func (h *HubService) Notify(eventType string, post models.Post) {
	message, err := json.Marshal(models.PostEvent{Type: eventType, Data: post})
	if err != nil {
		logger.GetDefault().Error("Failed to marshal post event", "type", eventType, "error", err)
		return
	}

	select {
	case h.hub.Broadcast <- message:
	default:
		logger.GetDefault().Warn("Post event dropped, broadcast queue full", "type", eventType, "post_id", post.ID)
	}
}
