package service

import (
	"testing"
	"time"

	"github.com/AdamBeresnev/courtside/internal/cache"
	"github.com/AdamBeresnev/courtside/internal/dbtest"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
)

var tipOff = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

type testEnv struct {
	db     *sqlx.DB
	stores *store.Stores
	clock  *clockwork.FakeClock
	cache  *cache.MemoryCache

	scoresheet *ScoresheetService
	roster     *RosterService
	seasons    *SeasonService
	stats      *StatsService
}

// setupTestDB creates an in-memory database with migrations applied and
// every service wired to it.
func setupTestDB(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.New(t)
	stores := store.New(db)
	clock := clockwork.NewFakeClockAt(tipOff)
	c := cache.NewMemoryCache(clock, time.Minute)

	return &testEnv{
		db:         db,
		stores:     stores,
		clock:      clock,
		cache:      c,
		scoresheet: NewScoresheetService(db, stores, c, clock, hoops.DefaultGameConfig()),
		roster:     NewRosterService(db, stores, c),
		seasons:    NewSeasonService(db, stores, c, hoops.DefaultMVPWeights()),
		stats:      NewStatsService(stores, c, hoops.DefaultMVPWeights()),
	}
}
