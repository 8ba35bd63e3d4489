package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/output"
)

// MessageType names a websocket message.
type MessageType string

const (
	MessageTypeMove         MessageType = "move"
	MessageTypeUndo         MessageType = "undo"
	MessageTypeReset        MessageType = "reset"
	MessageTypeDestinations MessageType = "destinations"
	MessageTypeGameState    MessageType = "gameState"
	MessageTypeError        MessageType = "error"
)

// Message is the envelope for every websocket frame in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type destinationsQuery struct {
	Square *square `json:"square"`
}

// socket serialises writes to one connection; game updates and replies to
// the client are written from different goroutines.
type socket struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *socket) send(t MessageType, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(Message{Type: t, Payload: payload})
}

func (s *socket) sendError(err error) error {
	return s.send(MessageTypeError, errorResponse{Error: reasonFor(err)})
}

// handleSocket pushes the game state on connect and after every change, and
// applies move, undo and reset commands from the client. Rejected commands
// are answered with an error message to this client only.
func (s *Server) handleSocket(c *websocket.Conn) {
	id := c.Params("id")
	ctx := context.Background()
	sock := &socket{conn: c}

	updates, err := s.games.Subscribe(ctx, id)
	if err != nil {
		_ = sock.sendError(err)
		return
	}

	st, err := s.games.Get(ctx, id)
	if err != nil {
		s.games.Unsubscribe(id, updates)
		_ = sock.sendError(err)
		return
	}
	if err := sock.send(MessageTypeGameState, output.GameToJSON(st)); err != nil {
		s.games.Unsubscribe(id, updates)
		return
	}
	s.log.Debugf("game %s: websocket connected", id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for st := range updates {
			if err := sock.send(MessageTypeGameState, output.GameToJSON(st)); err != nil {
				return
			}
		}
	}()

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = sock.sendError(fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := s.handleMessage(ctx, sock, id, msg); err != nil {
			_ = sock.sendError(err)
		}
	}

	s.games.Unsubscribe(id, updates)
	<-done
	s.log.Debugf("game %s: websocket closed", id)
}

func (s *Server) handleMessage(ctx context.Context, sock *socket, id string, msg Message) error {
	switch msg.Type {
	case MessageTypeMove:
		var req moveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("malformed move: %w", err)
		}
		if err := req.validate(); err != nil {
			return err
		}
		_, err := s.games.Move(ctx, id, chess.Position(*req.From), chess.Position(*req.To))
		return err

	case MessageTypeUndo:
		_, err := s.games.Undo(ctx, id)
		return err

	case MessageTypeReset:
		_, err := s.games.Reset(ctx, id)
		return err

	case MessageTypeDestinations:
		var q destinationsQuery
		if err := json.Unmarshal(msg.Payload, &q); err != nil || q.Square == nil {
			return fmt.Errorf("destinations needs a square")
		}
		from := chess.Position(*q.Square)
		dests, err := s.games.Destinations(ctx, id, from)
		if err != nil {
			return err
		}
		return sock.send(MessageTypeDestinations, destinationsOf(from, dests))
	}
	return fmt.Errorf("unknown message type %q", msg.Type)
}

func destinationsOf(from chess.Position, dests []chess.Position) destinationsResponse {
	resp := destinationsResponse{
		Square:       from.String(),
		Destinations: make([]chess.Position, 0, len(dests)),
		Squares:      make([]string, 0, len(dests)),
	}
	for _, d := range dests {
		resp.Destinations = append(resp.Destinations, d)
		resp.Squares = append(resp.Squares, d.String())
	}
	return resp
}
