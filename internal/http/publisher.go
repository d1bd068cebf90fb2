package http

import (
	"encoding/json"

	"github.com/sujalbistaa/socialapp/internal/feed"
	"github.com/sujalbistaa/socialapp/internal/log"
	"github.com/sujalbistaa/socialapp/internal/models"
	"github.com/sujalbistaa/socialapp/internal/render"
	"github.com/sujalbistaa/socialapp/internal/ws"
)

// WsMessage is the JSON envelope the page script expects.
type WsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type likePayload struct {
	render.LikeAffordance
	HTML string `json:"html"`
}

// HubPublisher forwards controller events to websocket clients.
type HubPublisher struct {
	Hub *ws.Hub
}

func (p HubPublisher) Publish(e feed.Event) {
	msg := WsMessage{Type: e.Type, Data: e.Data}

	if post, ok := e.Data.(models.Post); ok && e.Type == feed.EventLike {
		a := render.Like(post, true)
		html, err := render.LikeFragment(a)
		if err != nil {
			log.Error.Printf("Error rendering like fragment: %v", err)
			return
		}
		msg.Data = likePayload{LikeAffordance: a, HTML: html}
	}

	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		log.Error.Printf("Error marshalling WS message: %v", err)
		return
	}
	p.Hub.Send(jsonMsg)
}
