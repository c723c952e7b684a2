package views

import (
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/service"
	"github.com/google/uuid"
)

type BoardPlayer struct {
	Entry hoops.RosterEntry
	Line  hoops.PlayerStat
}

type BoardSide struct {
	Side     hoops.Side
	TeamID   uuid.UUID
	Name     string
	Score    int
	Fouls    int
	Timeouts int
	OnCourt  []BoardPlayer
	Bench    []BoardPlayer
}

type BoardData struct {
	A BoardSide
	B BoardSide
}

// PrepareBoardData splits each roster into the players on court, in the order
// the scorer picked them, and the bench in roster order.
func PrepareBoardData(board *service.ScoresheetBoard) BoardData {
	s := board.State
	return BoardData{
		A: prepareSide(hoops.SideA, board.Game.TeamAID, board.Game.TeamAName, s.TeamAScore, s.TeamAFouls, s.TeamATimeouts,
			board.RosterA, s.TeamAActivePlayers, board.Lines),
		B: prepareSide(hoops.SideB, board.Game.TeamBID, board.Game.TeamBName, s.TeamBScore, s.TeamBFouls, s.TeamBTimeouts,
			board.RosterB, s.TeamBActivePlayers, board.Lines),
	}
}

func prepareSide(side hoops.Side, teamID uuid.UUID, name string, score, fouls, timeouts int,
	roster []hoops.RosterEntry, active []uuid.UUID, lines map[uuid.UUID]hoops.PlayerStat) BoardSide {

	entryMap := make(map[uuid.UUID]hoops.RosterEntry, len(roster))
	for _, e := range roster {
		entryMap[e.ID] = e
	}

	out := BoardSide{Side: side, TeamID: teamID, Name: name, Score: score, Fouls: fouls, Timeouts: timeouts}

	onCourt := make(map[uuid.UUID]bool, len(active))
	for _, id := range active {
		e, ok := entryMap[id]
		if !ok || onCourt[id] {
			continue
		}
		onCourt[id] = true
		out.OnCourt = append(out.OnCourt, BoardPlayer{Entry: e, Line: lines[id]})
	}

	for _, e := range roster {
		if onCourt[e.ID] {
			continue
		}
		out.Bench = append(out.Bench, BoardPlayer{Entry: e, Line: lines[e.ID]})
	}
	return out
}
