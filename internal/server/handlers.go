package server

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chessrules/internal/analysis"
	"github.com/lgbarn/chessrules/internal/chess"
	"github.com/lgbarn/chessrules/internal/fen"
	"github.com/lgbarn/chessrules/internal/output"
	"github.com/lgbarn/chessrules/internal/store"
)

// square accepts either a square name ("e2") or a {"row":6,"col":4} object.
// Objects are passed through unchecked so out-of-range coordinates reach the
// engine and are rejected as an invalid move.
type square chess.Position

func (sq *square) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p, err := chess.ParseSquare(name)
		if err != nil {
			return err
		}
		*sq = square(p)
		return nil
	}
	var p chess.Position
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("square must be a name or a {row, col} object: %w", err)
	}
	*sq = square(p)
	return nil
}

type createRequest struct {
	Title string `json:"title"`
}

type moveRequest struct {
	From *square `json:"from"`
	To   *square `json:"to"`
}

func (r moveRequest) validate() error {
	if r.From == nil || r.To == nil {
		return fiber.NewError(fiber.StatusBadRequest, "from and to are required")
	}
	return nil
}

type listResponse struct {
	Games []store.Summary `json:"games"`
}

type destinationsResponse struct {
	Square       string           `json:"square"`
	Destinations []chess.Position `json:"destinations"`
	Squares      []string         `json:"squares"`
}

type positionRequest struct {
	FEN    string        `json:"fen,omitempty"`
	Board  *chess.Board  `json:"board,omitempty"`
	ToMove *chess.Colour `json:"currentPlayer,omitempty"`
}

type analyzeRequest struct {
	Positions []positionRequest `json:"positions"`
}

type analyzeResponse struct {
	Results []analysis.Report `json:"results"`
}

// parseBody decodes a JSON request body. An empty body leaves v unchanged.
func parseBody(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body: "+err.Error())
	}
	return nil
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req createRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	st, err := s.games.Create(c.UserContext(), req.Title)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(output.GameToJSON(st))
}

func (s *Server) listGames(c *fiber.Ctx) error {
	games, err := s.games.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(listResponse{Games: games})
}

func (s *Server) getGame(c *fiber.Ctx) error {
	st, err := s.games.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(output.GameToJSON(st))
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.games.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) move(c *fiber.Ctx) error {
	var req moveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}
	st, err := s.games.Move(c.UserContext(), c.Params("id"), chess.Position(*req.From), chess.Position(*req.To))
	if err != nil {
		return err
	}
	return c.JSON(output.GameToJSON(st))
}

func (s *Server) destinations(c *fiber.Ctx) error {
	from, err := chess.ParseSquare(c.Query("square"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	dests, err := s.games.Destinations(c.UserContext(), c.Params("id"), from)
	if err != nil {
		return err
	}

	return c.JSON(destinationsOf(from, dests))
}

func (s *Server) undo(c *fiber.Ctx) error {
	st, err := s.games.Undo(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(output.GameToJSON(st))
}

func (s *Server) reset(c *fiber.Ctx) error {
	st, err := s.games.Reset(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(output.GameToJSON(st))
}

func (s *Server) analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	positions := make([]analysis.Position, 0, len(req.Positions))
	for i, p := range req.Positions {
		pos, err := p.position()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("position %d: %v", i, err))
		}
		positions = append(positions, pos)
	}

	reports, err := s.analyzer.Analyze(c.UserContext(), positions)
	if err != nil {
		return err
	}
	return c.JSON(analyzeResponse{Results: reports})
}

// position resolves a request entry. A FEN record takes precedence over a
// board; a board without a side to move has white to move.
func (p positionRequest) position() (analysis.Position, error) {
	if p.FEN != "" {
		board, toMove, err := fen.Decode(p.FEN)
		if err != nil {
			return analysis.Position{}, err
		}
		return analysis.Position{Board: board, ToMove: toMove}, nil
	}
	if p.Board == nil {
		return analysis.Position{}, fmt.Errorf("fen or board is required")
	}
	pos := analysis.Position{Board: *p.Board, ToMove: chess.White}
	if p.ToMove != nil {
		pos.ToMove = *p.ToMove
	}
	return pos, nil
}
