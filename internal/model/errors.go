package model

import "errors"

// Common errors used across the application
var (
	// Record errors
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidRecord  = errors.New("invalid game record")
	ErrInvalidSGF     = errors.New("invalid SGF")
	ErrInvalidColor   = errors.New("invalid color")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session is closed")

	// Navigation and replay errors. These are recoverable: the session is
	// left unchanged.
	ErrNotInStudy      = errors.New("session is not in study phase")
	ErrNotInReplay     = errors.New("session is not in replay phase")
	ErrReplayExhausted = errors.New("no moves left to replay")
	ErrNotOpponentTurn = errors.New("current move belongs to the user")
	ErrNotUserTurn     = errors.New("current move is played automatically")
	ErrInvalidRange    = errors.New("invalid replay range")
	ErrInvalidPosition = errors.New("invalid board position")
)
