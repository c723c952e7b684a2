package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/service"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/a-h/templ"
)

func leagueTitle(l *hoops.League) string {
	return fmt.Sprintf("%s %d", l.Name, l.Year)
}

func SchedulePage(p Page, s *service.Schedule) templ.Component {
	p.Title = "Schedule"
	return Layout(p, component(func(ctx context.Context, b *builder) {
		if s.League == nil {
			heading(b, "Schedule")
			emptyState(b, "No league is active right now.")
			return
		}
		heading(b, leagueTitle(s.League)+" schedule")
		if len(s.Days) == 0 {
			emptyState(b, "No games scheduled yet.")
			return
		}
		for _, day := range s.Days {
			b.rawf(`<section class="mb-6"><h2 class="text-lg font-medium mb-2">%s</h2><div class="grid gap-3 md:grid-cols-2">`, esc(FormatDay(day.Date)))
			for _, g := range day.Games {
				gameCard(b, g, p.loc())
			}
			b.raw(`</div></section>`)
		}
	}))
}

func gameCard(b *builder, g service.GameCard, loc *time.Location) {
	b.rawf(`<a href="/games/%s" class="block bg-white rounded shadow p-4 hover:shadow-md">`, g.ID)
	b.rawf(`<div class="flex justify-between text-xs text-gray-500"><span>%s · %s</span><span>%s</span></div>`,
		esc(statusLabel(g.Status)), esc(FormatTipOff(g.ScheduledAt, loc)), esc(utils.OrZero(g.Venue)))
	b.raw(`<div class="mt-2 flex justify-between items-center">`)
	b.rawf(`<span class="font-medium">%s</span>`, esc(g.TeamAName))
	if g.Status == hoops.GameScheduled {
		b.raw(`<span class="text-gray-400">vs</span>`)
	} else {
		b.rawf(`<span class="font-mono">%d - %d</span>`, g.TeamAScore, g.TeamBScore)
	}
	b.rawf(`<span class="font-medium">%s</span>`, esc(g.TeamBName))
	b.raw(`</div></a>`)
}

func LeaderboardPage(p Page, lb *service.Leaderboard) templ.Component {
	p.Title = "Leaderboard"
	return Layout(p, component(func(ctx context.Context, b *builder) {
		heading(b, "Leaderboard")
		if lb.League == nil {
			emptyState(b, "No league is active right now.")
			return
		}

		b.raw(`<div class="flex gap-2 mb-4 text-sm">`)
		for _, s := range service.LeaderboardSorts {
			class := "bg-white border"
			if s == lb.SortBy {
				class = "bg-orange-600 text-white"
			}
			b.rawf(`<a href="/leaderboard?sort=%s" class="rounded px-3 py-1 %s">%s</a>`, s, class, esc(sortLabel(s)))
		}
		b.raw(`</div>`)

		if len(lb.Lines) == 0 {
			emptyState(b, "No stats recorded this season.")
			return
		}

		b.raw(`<table class="w-full bg-white shadow rounded text-sm"><thead class="bg-gray-100"><tr>`)
		for _, h := range []string{"#", "Player", "Team", "GP", "PTS", "REB", "AST", "STL", "BLK", "FG%", "3P%", "FT%", "MVP"} {
			b.rawf(`<th class="px-2 py-1 text-left">%s</th>`, h)
		}
		b.raw(`</tr></thead><tbody>`)
		for i, l := range lb.Lines {
			b.raw(`<tr class="border-t">`)
			b.rawf(`<td class="px-2 py-1">%d</td>`, i+1)
			b.rawf(`<td class="px-2 py-1">%s</td>`, esc(l.Username))
			b.rawf(`<td class="px-2 py-1"><a class="underline" href="/teams/%s">%s</a></td>`, l.TeamID, esc(l.TeamName))
			b.rawf(`<td class="px-2 py-1">%d</td>`, l.GamesPlayed)
			for _, v := range []float64{l.Points, l.Rebounds, l.Assists, l.Steals, l.Blocks} {
				b.rawf(`<td class="px-2 py-1">%s</td>`, FormatAvg(v))
			}
			for _, v := range []float64{l.FieldGoalPct, l.ThreePointPct, l.FreeThrowPct} {
				b.rawf(`<td class="px-2 py-1">%s</td>`, FormatPct(v))
			}
			b.rawf(`<td class="px-2 py-1 font-medium">%s</td>`, FormatAvg(l.MVPScore))
			b.raw(`</tr>`)
		}
		b.raw(`</tbody></table>`)
	}))
}

func sortLabel(s string) string {
	switch s {
	case "fg_pct":
		return "FG%"
	case "mvp":
		return "MVP"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func StandingsPage(p Page, st *service.Standings) templ.Component {
	p.Title = "Standings"
	return Layout(p, component(func(ctx context.Context, b *builder) {
		if st.League == nil {
			heading(b, "Standings")
			emptyState(b, "No league is active right now.")
			return
		}
		heading(b, leagueTitle(st.League)+" standings")
		if len(st.Rows) == 0 {
			emptyState(b, "No teams in this league yet.")
			return
		}
		standingsTable(b, st.Rows)
	}))
}

func standingsTable(b *builder, rows []service.StandingRow) {
	b.raw(`<table class="w-full bg-white shadow rounded text-sm"><thead class="bg-gray-100"><tr>`)
	for _, h := range []string{"Team", "GP", "W", "L", "T", "PF", "PA", "Diff", "Win%"} {
		b.rawf(`<th class="px-2 py-1 text-left">%s</th>`, h)
	}
	b.raw(`</tr></thead><tbody>`)
	for _, r := range rows {
		b.raw(`<tr class="border-t">`)
		b.rawf(`<td class="px-2 py-1"><a class="underline" href="/teams/%s">%s</a></td>`, r.TeamID, esc(r.TeamName))
		b.rawf(`<td class="px-2 py-1">%d</td><td class="px-2 py-1">%d</td><td class="px-2 py-1">%d</td><td class="px-2 py-1">%d</td>`,
			r.Played, r.Wins, r.Losses, r.Ties)
		b.rawf(`<td class="px-2 py-1">%d</td><td class="px-2 py-1">%d</td><td class="px-2 py-1">%+d</td>`,
			r.PointsFor, r.PointsAgainst, r.PointDiff())
		b.rawf(`<td class="px-2 py-1">%s</td>`, FormatPct(r.WinPct()))
		b.raw(`</tr>`)
	}
	b.raw(`</tbody></table>`)
}

func TeamPage(p Page, d *service.TeamDetail) templ.Component {
	p.Title = d.Team.Name
	return Layout(p, component(func(ctx context.Context, b *builder) {
		heading(b, d.Team.Name)
		if d.Coach != "" {
			b.rawf(`<p class="text-sm text-gray-600 mb-4">Coach: %s</p>`, esc(d.Coach))
		}
		if d.Record != nil {
			b.rawf(`<p class="mb-4 font-medium">Record: %d-%d-%d</p>`, d.Record.Wins, d.Record.Losses, d.Record.Ties)
		}

		b.raw(`<div class="grid gap-6 md:grid-cols-2">`)
		b.raw(`<section><h2 class="text-lg font-medium mb-2">Roster</h2>`)
		if len(d.Roster) == 0 {
			emptyState(b, "No players yet.")
		} else {
			b.raw(`<ul class="bg-white shadow rounded divide-y">`)
			for _, e := range d.Roster {
				b.rawf(`<li class="px-3 py-2 flex justify-between"><span>%s %s</span><span class="text-gray-500">%s</span></li>`,
					esc(FormatJersey(e.JerseyNumber)), esc(e.Username), esc(utils.OrZero(e.Position)))
			}
			b.raw(`</ul>`)
		}
		b.raw(`</section>`)

		b.raw(`<section><h2 class="text-lg font-medium mb-2">Games</h2>`)
		if len(d.Games) == 0 {
			emptyState(b, "No games this season.")
		} else {
			b.raw(`<div class="grid gap-3">`)
			for _, g := range d.Games {
				gameCard(b, g, p.loc())
			}
			b.raw(`</div>`)
		}
		b.raw(`</section></div>`)

		if len(d.Lines) > 0 {
			b.raw(`<h2 class="text-lg font-medium mt-6 mb-2">Season averages</h2>`)
			b.raw(`<table class="w-full bg-white shadow rounded text-sm"><thead class="bg-gray-100"><tr>`)
			for _, h := range []string{"Player", "GP", "PTS", "REB", "AST", "FG%", "MVP"} {
				b.rawf(`<th class="px-2 py-1 text-left">%s</th>`, h)
			}
			b.raw(`</tr></thead><tbody>`)
			for _, l := range d.Lines {
				b.rawf(`<tr class="border-t"><td class="px-2 py-1">%s</td><td class="px-2 py-1">%d</td>`, esc(l.Username), l.GamesPlayed)
				b.rawf(`<td class="px-2 py-1">%s</td><td class="px-2 py-1">%s</td><td class="px-2 py-1">%s</td>`,
					FormatAvg(l.Points), FormatAvg(l.Rebounds), FormatAvg(l.Assists))
				b.rawf(`<td class="px-2 py-1">%s</td><td class="px-2 py-1">%s</td></tr>`, FormatPct(l.FieldGoalPct), FormatAvg(l.MVPScore))
			}
			b.raw(`</tbody></table>`)
		}
	}))
}

func GamePage(p Page, d *service.GameDetail) templ.Component {
	g := d.Game
	p.Title = g.TeamAName + " vs " + g.TeamBName
	return Layout(p, component(func(ctx context.Context, b *builder) {
		b.raw(`<div class="bg-white shadow rounded p-6 mb-6 text-center">`)
		b.rawf(`<div class="text-xs text-gray-500">%s · %s</div>`, esc(statusLabel(g.Status)), esc(FormatTipOff(g.ScheduledAt, p.loc())))
		b.raw(`<div class="mt-2 flex justify-center items-center gap-6 text-2xl">`)
		b.rawf(`<a href="/teams/%s" class="font-semibold">%s</a>`, g.TeamAID, esc(g.TeamAName))
		b.rawf(`<span class="font-mono">%d - %d</span>`, g.TeamAScore, g.TeamBScore)
		b.rawf(`<a href="/teams/%s" class="font-semibold">%s</a>`, g.TeamBID, esc(g.TeamBName))
		b.raw(`</div>`)
		if d.Winner != nil {
			winner := g.TeamAName
			if *d.Winner == g.TeamBID {
				winner = g.TeamBName
			}
			b.rawf(`<div class="mt-2 text-sm text-green-700">%s win</div>`, esc(winner))
		}
		b.raw(`</div>`)

		boxScore(b, g.TeamAName, d.BoxA)
		boxScore(b, g.TeamBName, d.BoxB)

		b.raw(`<h2 class="text-lg font-medium mt-6 mb-2">Play-by-play</h2>`)
		if len(d.Events) == 0 {
			emptyState(b, "Nothing recorded yet.")
			return
		}
		b.raw(`<ol class="bg-white shadow rounded divide-y text-sm">`)
		for _, e := range d.Events {
			b.rawf(`<li class="px-3 py-1"><span class="text-gray-500">Q%d</span> %s: %s`, e.Quarter, esc(e.Username), esc(e.Kind))
			if e.Value != 0 && e.Kind != hoops.ShotKind(e.Value, true) {
				b.rawf(` (%+d)`, e.Value)
			}
			b.raw(`</li>`)
		}
		b.raw(`</ol>`)
	}))
}

func boxScore(b *builder, team string, lines []service.BoxLine) {
	b.rawf(`<h2 class="text-lg font-medium mt-4 mb-2">%s</h2>`, esc(team))
	if len(lines) == 0 {
		emptyState(b, "No stats recorded.")
		return
	}
	b.raw(`<table class="w-full bg-white shadow rounded text-sm"><thead class="bg-gray-100"><tr>`)
	for _, h := range []string{"Player", "PTS", "REB", "AST", "STL", "BLK", "PF", "TO", "FG", "3P", "FT", "MVP"} {
		b.rawf(`<th class="px-2 py-1 text-left">%s</th>`, h)
	}
	b.raw(`</tr></thead><tbody>`)
	for _, l := range lines {
		b.rawf(`<tr class="border-t"><td class="px-2 py-1">%s %s</td>`, esc(FormatJersey(l.JerseyNumber)), esc(l.Username))
		for _, v := range []int{l.Points, l.Rebounds, l.Assists, l.Steals, l.Blocks, l.Fouls, l.Turnovers} {
			b.rawf(`<td class="px-2 py-1">%d</td>`, v)
		}
		b.rawf(`<td class="px-2 py-1">%d/%d (%s)</td>`, l.FieldGoalsMade, l.FieldGoalsAttempted, FormatPct(l.FieldGoalPct))
		b.rawf(`<td class="px-2 py-1">%d/%d (%s)</td>`, l.ThreePointersMade, l.ThreePointersAttempted, FormatPct(l.ThreePointPct))
		b.rawf(`<td class="px-2 py-1">%d/%d (%s)</td>`, l.FreeThrowsMade, l.FreeThrowsAttempted, FormatPct(l.FreeThrowPct))
		b.rawf(`<td class="px-2 py-1">%s</td></tr>`, FormatAvg(l.MVPScore))
	}
	b.raw(`</tbody></table>`)
}
