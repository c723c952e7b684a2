package hoops

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	JoinCode  string    `db:"join_code"`
	CoachID   uuid.UUID `db:"coach_id"`
	CreatedAt time.Time `db:"created_at"`
}

type PlayerStatus string

const (
	PlayerPending  PlayerStatus = "pending"
	PlayerApproved PlayerStatus = "approved"
	PlayerRejected PlayerStatus = "rejected"
)

// Player is a user's membership on a team, not the user itself.
type Player struct {
	ID           uuid.UUID    `db:"id"`
	UserID       uuid.UUID    `db:"user_id"`
	TeamID       uuid.UUID    `db:"team_id"`
	Status       PlayerStatus `db:"status"`
	JerseyNumber *int         `db:"jersey_number"`
	Position     *string      `db:"position"`
	CreatedAt    time.Time    `db:"created_at"`
}

// RosterEntry is a Player joined with the owning user's name.
type RosterEntry struct {
	Player
	Username string `db:"username"`
}

// Membership is a Player joined with its team's name, used on a player's own page.
type Membership struct {
	Player
	TeamName string `db:"team_name"`
}
