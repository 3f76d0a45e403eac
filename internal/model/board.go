package model

// BoardSquare is an occupied square in a BoardView.
type BoardSquare struct {
	Square string `json:"square"` // e.g. "e4"
	Type   string `json:"type"`   // p, n, b, r, q, k
	Color  string `json:"color"`  // w or b
}

// BoardView is the resolved board, rank 8 first and file a first. Empty
// squares are nil.
type BoardView [8][8]*BoardSquare
