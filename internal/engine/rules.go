// Package engine provides chess move validation, move application and
// check / checkmate / stalemate classification.
//
// Every function is a pure function of its arguments. Boards are passed and
// returned by value, so callers may evaluate independent positions from
// several goroutines without locking.
//
// Boards must hold exactly one king of each colour. Attack detection on other
// boards is unspecified; it is not reported as an error.
package engine

import "github.com/lgbarn/chessrules/internal/chess"

// Rules selects a rule variant. The zero value is Standard.
type Rules struct {
	// StrictPawnAdvance also requires the square passed over by a two-square
	// pawn advance to be empty. Standard rules check only the destination,
	// which lets a pawn on its home row jump a blocking piece.
	StrictPawnAdvance bool
}

// Standard is the default rule set.
var Standard = Rules{}

// Strict is Standard with StrictPawnAdvance enabled.
var Strict = Rules{StrictPawnAdvance: true}

// IsLegalMove reports whether mover may play from→to under Standard rules.
func IsLegalMove(board chess.Board, from, to chess.Position, mover chess.Colour) bool {
	return Standard.IsLegalMove(board, from, to, mover)
}

// CheckMove validates from→to under Standard rules and returns the rejection reason.
func CheckMove(board chess.Board, from, to chess.Position, mover chess.Colour) error {
	return Standard.CheckMove(board, from, to, mover)
}

// ApplyMove plays from→to under Standard rules.
func ApplyMove(board chess.Board, from, to chess.Position, mover chess.Colour, ledger chess.Captured) (Result, error) {
	return Standard.ApplyMove(board, from, to, mover, ledger)
}

// IsSquareAttacked reports whether any piece of attacker reaches pos under Standard rules.
func IsSquareAttacked(board chess.Board, pos chess.Position, attacker chess.Colour) bool {
	return Standard.IsSquareAttacked(board, pos, attacker)
}

// IsInCheck returns true if the given colour's king is attacked.
func IsInCheck(board chess.Board, colour chess.Colour) bool {
	return Standard.IsInCheck(board, colour)
}

// HasAnyLegalMove returns true if colour has at least one legal move under Standard rules.
func HasAnyLegalMove(board chess.Board, colour chess.Colour) bool {
	return Standard.HasAnyLegalMove(board, colour)
}

// IsCheckmate returns true if colour is checkmated under Standard rules.
func IsCheckmate(board chess.Board, colour chess.Colour) bool {
	return Standard.IsCheckmate(board, colour)
}

// IsStalemate returns true if colour is stalemated under Standard rules.
func IsStalemate(board chess.Board, colour chess.Colour) bool {
	return Standard.IsStalemate(board, colour)
}

// Classify returns the status of the position for colour to move under Standard rules.
func Classify(board chess.Board, colour chess.Colour) Status {
	return Standard.Classify(board, colour)
}

// LegalDestinations lists the squares the piece on from may move to under Standard rules.
func LegalDestinations(board chess.Board, from chess.Position, mover chess.Colour) []chess.Position {
	return Standard.LegalDestinations(board, from, mover)
}

// LegalMoves lists every legal move for mover under Standard rules.
func LegalMoves(board chess.Board, mover chess.Colour) []chess.Move {
	return Standard.LegalMoves(board, mover)
}
