package game

import "errors"

var (
	ErrInvalidParams = errors.New("invalid game parameters")
	ErrInvalidIndex  = errors.New("invalid index")
	ErrNotActive     = errors.New("game session not active")
)
