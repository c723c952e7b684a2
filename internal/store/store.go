package store

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// expectRow turns an UPDATE/DELETE that touched nothing into sql.ErrNoRows.
func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stores bundles every store over one database handle.
type Stores struct {
	Users   *UserStore
	Teams   *TeamStore
	Leagues *LeagueStore
	Games   *GameStore
	Stats   *StatStore
}

func New(db *sqlx.DB) *Stores {
	return &Stores{
		Users:   NewUserStore(db),
		Teams:   NewTeamStore(db),
		Leagues: NewLeagueStore(db),
		Games:   NewGameStore(db),
		Stats:   NewStatStore(db),
	}
}
