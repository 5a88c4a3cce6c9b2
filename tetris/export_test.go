package tetris

// GridRef exposes the live grid so tests can lay out locked cells.
func (e *Engine) GridRef() *Grid {
	return &e.grid
}

// Place replaces the active piece.
func (e *Engine) Place(p Piece) {
	e.piece = p
	e.hasPiece = true
}
