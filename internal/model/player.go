package model

import "time"

// PlayerID uniquely identifies a player on the scoreboard.
// IDs are positive, allocated sequentially from 1, and never reused.
type PlayerID int64

// Player is a scoreboard participant. Name and score live in a single
// record so the two can never diverge.
type Player struct {
	ID        PlayerID
	Name      string
	Score     int
	CreatedAt time.Time
}

// Standing is a read-only projection of a player's position on the board
type Standing struct {
	ID    PlayerID
	Name  string
	Score int
}

// RosterEntry is a read-only projection used for player listings
type RosterEntry struct {
	ID   PlayerID
	Name string
}
