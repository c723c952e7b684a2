package hoops

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameEvent is one play-by-play entry.
type GameEvent struct {
	ID        uuid.UUID `db:"id"`
	GameID    uuid.UUID `db:"game_id"`
	PlayerID  uuid.UUID `db:"player_id"`
	Quarter   int       `db:"quarter"`
	Kind      string    `db:"kind"`
	Value     int       `db:"value"`
	CreatedAt time.Time `db:"created_at"`
}

func ShotKind(points int, made bool) string {
	if made {
		return fmt.Sprintf("%dpt_made", points)
	}
	return fmt.Sprintf("%dpt_missed", points)
}

// GameEventView is a GameEvent with the player's name resolved.
type GameEventView struct {
	GameEvent
	Username string `db:"username"`
}
