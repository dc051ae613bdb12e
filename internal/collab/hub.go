package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shapeforge/shapeforge/backend-go/internal/curve"
	"github.com/shapeforge/shapeforge/backend-go/internal/document"
	"github.com/shapeforge/shapeforge/backend-go/internal/typeid"
)

// DocumentLoader fetches the latest persisted document for a project.
type DocumentLoader func(ctx context.Context, projectID string) (*document.Document, error)

// DocumentSaver persists a document snapshot for a project.
type DocumentSaver func(ctx context.Context, projectID string, doc *document.Document) error

type Room struct {
	projectID string
	clients   map[string]*Client // clientID -> client
	presence  *PresenceManager
	state     *DocumentState
	dirty     bool
}

func NewRoom(projectID string, state *DocumentState) *Room {
	return &Room{
		projectID: projectID,
		clients:   make(map[string]*Client),
		presence:  NewPresenceManager(),
		state:     state,
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // projectID -> room
	register   chan *Client
	unregister chan *Client
	loader     DocumentLoader
	saver      DocumentSaver
	combiner   curve.Combiner
}

func NewHub(loader DocumentLoader, saver DocumentSaver, combiner curve.Combiner) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		loader:     loader,
		saver:      saver,
		combiner:   combiner,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop flushes every dirty room's document to storage.
func (h *Hub) Stop(ctx context.Context) {
	h.mu.Lock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}
	h.mu.Unlock()

	for _, room := range rooms {
		h.persistRoom(ctx, room)
	}
}

func (h *Hub) persistRoom(ctx context.Context, room *Room) {
	h.mu.Lock()
	if !room.dirty || h.saver == nil {
		h.mu.Unlock()
		return
	}
	room.dirty = false
	h.mu.Unlock()

	doc := room.state.GetDocument()
	if err := h.saver(ctx, room.projectID, doc); err != nil {
		slog.Error("persist document", "project", room.projectID, "error", err)
		return
	}
	slog.Info("document persisted", "project", room.projectID)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	h.mu.Unlock()

	if !ok {
		doc, err := h.loadDocument(client.ProjectID)
		if err != nil {
			slog.Error("load document", "project", client.ProjectID, "error", err)
			client.Send(errorMessage("document unavailable"))
			close(client.send)
			return
		}

		h.mu.Lock()
		// Another client may have raced us here.
		room, ok = h.rooms[client.ProjectID]
		if !ok {
			room = NewRoom(client.ProjectID, NewDocumentState(doc, h.combiner))
			h.rooms[client.ProjectID] = room
		}
		h.mu.Unlock()
	}

	h.mu.Lock()
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Welcome with the client's server-assigned identity
	welcomePayload, _ := json.Marshal(map[string]string{"clientId": client.ClientID})
	client.Send(&Message{Type: TypeWelcome, ClientID: client.ClientID, Payload: welcomePayload})

	// Full document sync for the new client
	docData, err := json.Marshal(room.state.GetDocument())
	if err != nil {
		slog.Error("marshal document", "project", client.ProjectID, "error", err)
	} else {
		client.Send(&Message{Type: TypeDocSync, ProjectID: client.ProjectID, Payload: docData})
	}

	// Send current presence state to new client
	stateMsg := room.presence.StateMessage()
	if stateMsg != nil {
		client.Send(stateMsg)
	}

	// Broadcast join to other clients
	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.ProjectID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) loadDocument(projectID string) (*document.Document, error) {
	if h.loader == nil {
		return document.NewSampleDocument(projectID), nil
	}
	return h.loader(context.Background(), projectID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.UserID)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.ProjectID)
	}
	h.mu.Unlock()

	if empty {
		h.persistRoom(context.Background(), room)
	}

	// Broadcast leave to remaining clients
	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		UserID: client.UserID,
	})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.ProjectID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.ProjectID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.UserID, &presence)

	// Broadcast to other clients in room
	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}
	h.broadcastToRoom(sender.ProjectID, outMsg, sender.ClientID)
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var submit OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid op payload", "error", err, "user", sender.UserID)
		return
	}

	op := submit.Operation
	if op.ID == "" {
		op.ID = typeid.NewOpID()
	}

	h.mu.RLock()
	room, ok := h.rooms[sender.ProjectID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	applied, serverSeq, err := room.state.ApplyOperation(op)
	if err != nil {
		slog.Warn("operation rejected", "type", op.Type, "user", sender.UserID, "error", err)
		nackPayload, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      err.Error(),
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nackPayload})
		return
	}

	h.mu.Lock()
	room.dirty = true
	h.mu.Unlock()

	ackPayload, _ := json.Marshal(OperationAckPayload{
		OperationID:     applied.ID,
		ServerSeq:       serverSeq,
		ServerTimestamp: GetServerTimestamp(),
	})
	sender.Send(&Message{Type: TypeOpAck, Payload: ackPayload})

	broadcastPayload, _ := json.Marshal(OperationBroadcastPayload{
		Operation: applied,
		UserID:    sender.UserID,
		ServerSeq: serverSeq,
	})
	h.broadcastToRoom(sender.ProjectID, &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Payload: broadcastPayload,
	}, sender.ClientID)
}

func (h *Hub) broadcastToRoom(projectID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[projectID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func errorMessage(reason string) *Message {
	payload, _ := json.Marshal(map[string]string{"reason": reason})
	return &Message{Type: TypeError, Payload: payload}
}
