package output

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/fen"
	"github.com/lgbarn/chessrules/internal/game"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Board          chess.Board    `json:"board"`
	FEN            string         `json:"fen"`
	CurrentPlayer  chess.Colour   `json:"currentPlayer"`
	CapturedPieces chess.Captured `json:"capturedPieces"`
	Material       JSONMaterial   `json:"material"`
	Status         engine.Status  `json:"status"`
	IsCheck        bool           `json:"isCheck"`
	IsCheckmate    bool           `json:"isCheckmate"`
	IsStalemate    bool           `json:"isStalemate"`
	Winner         string         `json:"winner,omitempty"`
	Message        string         `json:"message"`
	PlyCount       int            `json:"plyCount"`
	MoveHistory    []JSONMove     `json:"moveHistory"`
	RecentCapture  *chess.Piece   `json:"recentCapture,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// JSONMaterial is the summed value of the pieces each side has lost.
type JSONMaterial struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	Ply      int            `json:"ply"`
	Color    string         `json:"color"` // "white" or "black"
	From     chess.Position `json:"from"`
	To       chess.Position `json:"to"`
	Notation string         `json:"notation"` // e.g. "e2-e4"
	Piece    string         `json:"piece"`
	Captured string         `json:"captured,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game snapshot to JSON format.
func GameToJSON(s game.State) *JSONGame {
	jg := &JSONGame{
		ID:             s.ID,
		Title:          s.Title,
		Board:          s.Board,
		FEN:            fen.Encode(s.Board, s.ToMove),
		CurrentPlayer:  s.ToMove,
		CapturedPieces: s.Captured,
		Material: JSONMaterial{
			White: s.Captured.Value(chess.White),
			Black: s.Captured.Value(chess.Black),
		},
		Status:      s.Status,
		IsCheck:     s.Status.InCheck(),
		IsCheckmate: s.Status == engine.Checkmate,
		IsStalemate: s.Status == engine.Stalemate,
		Message:     s.Message(),
		PlyCount:    s.Ply(),
		MoveHistory: convertHistory(s.History),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if winner, ok := s.Winner(); ok {
		jg.Winner = colorName(winner)
	}
	if p, ok := s.LastCapture.Piece(); ok {
		jg.RecentCapture = &p
	}

	return jg
}

// convertHistory converts move records to JSON format.
func convertHistory(history []chess.MoveRecord) []JSONMove {
	result := make([]JSONMove, 0, len(history))
	for i, rec := range history {
		jm := JSONMove{
			Ply:      i + 1,
			Color:    colorName(rec.Piece.Colour),
			From:     rec.From,
			To:       rec.To,
			Notation: rec.Move().String(),
			Piece:    rec.Piece.Kind.String(),
		}
		if p, ok := rec.Captured.Piece(); ok {
			jm.Captured = p.Kind.String()
		}
		result = append(result, jm)
	}
	return result
}

func colorName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

// WriteGameJSON writes a single game as indented JSON.
func WriteGameJSON(w io.Writer, s game.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(s))
}

// WriteGamesJSON writes several games as a JSON object with a games array.
func WriteGamesJSON(w io.Writer, games []game.State) error {
	out := &JSONOutput{Games: make([]*JSONGame, 0, len(games))}
	for _, s := range games {
		out.Games = append(out.Games, GameToJSON(s))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
