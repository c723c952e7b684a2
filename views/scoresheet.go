package views

import (
	"context"
	"time"

	"github.com/AdamBeresnev/courtside/internal/access"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/service"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/a-h/templ"
	"github.com/google/uuid"
)

var gameStatuses = []hoops.GameStatus{hoops.GameScheduled, hoops.GameInProgress, hoops.GameCompleted, hoops.GameCancelled}

func ScoresheetIndexPage(p Page, idx *service.ScoresheetIndex) templ.Component {
	p.Title = "Scoresheet"
	return Layout(p, component(func(ctx context.Context, b *builder) {
		heading(b, "Scoresheet")
		if idx.League == nil {
			emptyState(b, "No league is active. Activate one under Seasons first.")
			return
		}
		b.rawf(`<p class="text-sm text-gray-600 mb-4">%s</p>`, esc(leagueTitle(idx.League)))

		if access.Can(p.User, access.CreateMatchup) {
			b.raw(`<details class="bg-white shadow rounded p-4 mb-6"><summary class="cursor-pointer font-medium">New matchup</summary>`)
			b.raw(`<form method="post" action="/scoresheet/create-matchup" class="mt-3 grid gap-2 md:grid-cols-3">`)
			teamSelect(b, "team_a_id", idx.Teams, uuid.Nil)
			teamSelect(b, "team_b_id", idx.Teams, uuid.Nil)
			b.raw(`<input type="datetime-local" name="scheduled_at" required class="border rounded px-2 py-1">`)
			b.raw(`<input name="venue" placeholder="Venue" class="border rounded px-2 py-1">`)
			b.raw(`<input type="number" name="total_quarters" min="1" placeholder="Quarters" class="border rounded px-2 py-1">`)
			b.raw(`<input type="number" name="minutes_per_quarter" min="1" placeholder="Minutes per quarter" class="border rounded px-2 py-1">`)
			b.raw(`<input type="number" name="timeouts_per_quarter" min="0" placeholder="Timeouts per quarter" class="border rounded px-2 py-1">`)
			b.raw(`<button class="rounded bg-orange-600 text-white px-4 py-1">Create</button></form></details>`)
		}

		if len(idx.Games) == 0 {
			emptyState(b, "No games yet.")
			return
		}

		canEdit := access.Can(p.User, access.UpdateMatchup)
		b.raw(`<div class="grid gap-3">`)
		for _, g := range idx.Games {
			b.raw(`<div class="bg-white shadow rounded p-4">`)
			b.rawf(`<div class="flex justify-between items-center"><a href="/scoresheet/%s" class="font-medium underline">%s vs %s</a>`,
				g.ID, esc(g.TeamAName), esc(g.TeamBName))
			b.rawf(`<span class="text-sm text-gray-500">%s · %s · %d - %d</span></div>`,
				esc(statusLabel(g.Status)), esc(FormatTipOff(g.ScheduledAt, p.loc())), g.TeamAScore, g.TeamBScore)
			if canEdit {
				matchupEditForm(b, g, idx.Teams, p.loc())
			}
			b.raw(`</div>`)
		}
		b.raw(`</div>`)
	}))
}

func teamSelect(b *builder, name string, teams []hoops.Team, selected uuid.UUID) {
	b.rawf(`<select name="%s" required class="border rounded px-2 py-1"><option value="">Select team</option>`, name)
	for _, t := range teams {
		sel := ""
		if t.ID == selected {
			sel = " selected"
		}
		b.rawf(`<option value="%s"%s>%s</option>`, t.ID, sel, esc(t.Name))
	}
	b.raw(`</select>`)
}

func matchupEditForm(b *builder, g service.GameCard, teams []hoops.Team, loc *time.Location) {
	b.raw(`<details class="mt-2 text-sm"><summary class="cursor-pointer text-gray-600">Edit</summary>`)
	b.rawf(`<form method="post" action="/scoresheet/matchups/%s" class="mt-2 grid gap-2 md:grid-cols-3">`, g.ID)
	teamSelect(b, "team_a_id", teams, g.TeamAID)
	teamSelect(b, "team_b_id", teams, g.TeamBID)
	b.rawf(`<input type="datetime-local" name="scheduled_at" required value="%s" class="border rounded px-2 py-1">`, formatInputTime(g.ScheduledAt, loc))
	b.rawf(`<input name="venue" value="%s" placeholder="Venue" class="border rounded px-2 py-1">`, esc(utils.OrZero(g.Venue)))
	statuses := gameStatuses
	if g.Status.Terminal() {
		statuses = []hoops.GameStatus{g.Status}
	}
	b.raw(`<select name="status" class="border rounded px-2 py-1">`)
	for _, s := range statuses {
		sel := ""
		if s == g.Status {
			sel = " selected"
		}
		b.rawf(`<option value="%s"%s>%s</option>`, s, sel, esc(statusLabel(s)))
	}
	b.raw(`</select><button class="rounded bg-gray-800 text-white px-4 py-1">Save</button></form></details>`)
}

// boardCaps is what the current user may do on the live board.
type boardCaps struct {
	UpdateState bool
	FieldGoals  bool
	Stats       bool
	SaveStats   bool
	Complete    bool
}

func ScoresheetPage(p Page, board *service.ScoresheetBoard) templ.Component {
	g := board.Game
	p.Title = "Scoring " + g.TeamAName + " vs " + g.TeamBName
	caps := boardCaps{
		UpdateState: access.Can(p.User, access.UpdateGameState),
		FieldGoals:  access.Can(p.User, access.RecordFieldGoal),
		Stats:       access.Can(p.User, access.RecordPlayerStat),
		SaveStats:   access.Can(p.User, access.SavePlayerStats),
		Complete:    access.Can(p.User, access.CompleteGame),
	}
	data := PrepareBoardData(board)

	return Layout(p, component(func(ctx context.Context, b *builder) {
		s := board.State
		b.rawf(`<div id="scoresheet" data-game="%s" data-quarters="%d" class="space-y-6">`, g.ID, s.Config.TotalQuarters)

		b.raw(`<div class="bg-gray-900 text-white rounded p-4 grid grid-cols-3 items-center text-center">`)
		scoreboardSide(b, data.A)
		b.raw(`<div>`)
		b.rawf(`<div class="text-sm uppercase tracking-wide">%s</div>`, esc(statusLabel(s.Status)))
		b.rawf(`<div class="text-4xl font-mono" id="clock">%s</div>`, FormatClock(s.TimeRemaining))
		b.rawf(`<div>Quarter <span id="quarter">%d</span> of %d</div>`, s.Quarter, s.Config.TotalQuarters)
		if caps.UpdateState {
			b.raw(`<div class="mt-2 flex justify-center gap-2 text-sm">`)
			b.raw(`<button onclick="courtside.quarter(-1)" class="bg-gray-700 rounded px-2">Q-</button>`)
			b.raw(`<button onclick="courtside.quarter(1)" class="bg-gray-700 rounded px-2">Q+</button>`)
			if s.IsRunning {
				b.raw(`<button onclick="courtside.update({is_running: false})" class="bg-red-600 rounded px-2">Stop</button>`)
			} else if !s.Status.Terminal() {
				b.raw(`<button onclick="courtside.update({is_running: true})" class="bg-green-600 rounded px-2">Start</button>`)
			}
			b.rawf(`<input id="clock-input" type="number" min="0" value="%d" class="w-20 text-black rounded px-1">`, s.TimeRemaining)
			b.raw(`<button onclick="courtside.setClock()" class="bg-gray-700 rounded px-2">Set clock</button>`)
			b.raw(`</div>`)
		}
		b.raw(`</div>`)
		scoreboardSide(b, data.B)
		b.raw(`</div>`)

		b.raw(`<div class="grid gap-6 md:grid-cols-2">`)
		benchPanel(b, data.A, caps, s.Quarter)
		benchPanel(b, data.B, caps, s.Quarter)
		b.raw(`</div>`)

		if caps.SaveStats {
			bulkEditor(b, data)
		}

		if caps.Complete && !s.Status.Terminal() {
			b.raw(`<button onclick="courtside.complete()" class="rounded bg-green-700 text-white px-4 py-2">Complete game</button>`)
		}
		b.rawf(`<p class="text-sm"><a class="underline" href="/games/%s">Public box score</a></p>`, g.ID)
		b.raw(`<p id="scoresheet-error" class="text-red-700"></p></div>`)
		b.raw(scoresheetScript)
	}))
}

func scoreboardSide(b *builder, side BoardSide) {
	b.rawf(`<div><div class="text-lg">%s</div><div class="text-5xl font-mono">%d</div>`, esc(side.Name), side.Score)
	b.rawf(`<div class="text-sm">Fouls %d · Timeouts %d</div></div>`, side.Fouls, side.Timeouts)
}

var statButtons = []struct {
	stat  hoops.StatType
	label string
}{
	{hoops.StatRebounds, "REB"},
	{hoops.StatAssists, "AST"},
	{hoops.StatSteals, "STL"},
	{hoops.StatBlocks, "BLK"},
	{hoops.StatFouls, "PF"},
	{hoops.StatTurnovers, "TO"},
}

func benchPanel(b *builder, side BoardSide, caps boardCaps, quarter int) {
	b.rawf(`<section class="bg-white shadow rounded p-4" data-side="%s"><h2 class="text-lg font-medium mb-2">%s</h2>`, side.Side, esc(side.Name))

	b.raw(`<h3 class="text-sm font-medium text-gray-600">On court</h3>`)
	if len(side.OnCourt) == 0 {
		b.raw(`<p class="text-sm text-gray-500 mb-2">Nobody selected.</p>`)
	}
	for _, pl := range side.OnCourt {
		playerRow(b, pl, caps, quarter, true)
	}

	b.raw(`<h3 class="text-sm font-medium text-gray-600 mt-3">Bench</h3>`)
	for _, pl := range side.Bench {
		playerRow(b, pl, caps, quarter, false)
	}

	if caps.UpdateState {
		b.rawf(`<button onclick="courtside.saveLineup('%s')" class="mt-3 text-sm underline">Save lineup</button>`, side.Side)
		b.rawf(`<div class="mt-2 flex gap-2 text-sm"><button onclick="courtside.teamCounter('%s', 'fouls', 1)" class="underline">+ team foul</button>`, side.Side)
		b.rawf(`<button onclick="courtside.teamCounter('%s', 'timeouts', -1)" class="underline">use timeout</button></div>`, side.Side)
	}
	b.raw(`</section>`)
}

func playerRow(b *builder, pl BoardPlayer, caps boardCaps, quarter int, onCourt bool) {
	id := pl.Entry.ID
	b.raw(`<div class="flex flex-wrap items-center gap-1 py-1 border-t text-sm">`)
	if caps.UpdateState {
		checked := ""
		if onCourt {
			checked = " checked"
		}
		b.rawf(`<input type="checkbox" class="lineup" value="%s"%s>`, id, checked)
	}
	b.rawf(`<span class="w-40">%s %s</span><span class="w-16 font-mono">%d pts</span>`,
		esc(FormatJersey(pl.Entry.JerseyNumber)), esc(pl.Entry.Username), pl.Line.Points)

	if caps.FieldGoals {
		for _, pts := range []int{1, 2, 3} {
			b.rawf(`<button onclick="courtside.shot('%s', %d, true, %d)" class="bg-green-100 rounded px-1">+%d</button>`, id, pts, quarter, pts)
			b.rawf(`<button onclick="courtside.shot('%s', %d, false, %d)" class="bg-red-100 rounded px-1">x%d</button>`, id, pts, quarter, pts)
		}
	}
	if caps.Stats {
		for _, sb := range statButtons {
			b.rawf(`<button onclick="courtside.stat('%s', '%s', 1, %d)" class="bg-gray-100 rounded px-1">%s</button>`, id, sb.stat, quarter, sb.label)
		}
	}
	b.raw(`</div>`)
}

func bulkEditor(b *builder, data BoardData) {
	b.raw(`<details class="bg-white shadow rounded p-4"><summary class="cursor-pointer font-medium">Edit full box score</summary>`)
	b.raw(`<table class="mt-3 text-sm"><thead><tr><th class="text-left">Player</th>`)
	for _, st := range hoops.StatTypes {
		b.rawf(`<th class="px-1">%s</th>`, esc(string(st)))
	}
	b.raw(`<th class="px-1">minutes_played</th></tr></thead><tbody>`)
	for _, side := range []BoardSide{data.A, data.B} {
		for _, pl := range append(append([]BoardPlayer(nil), side.OnCourt...), side.Bench...) {
			b.rawf(`<tr class="box-row" data-player="%s"><td>%s</td>`, pl.Entry.ID, esc(pl.Entry.Username))
			counters := pl.Line.Counters()
			for i, st := range hoops.StatTypes {
				b.rawf(`<td><input type="number" min="0" data-stat="%s" value="%d" class="w-14 border rounded px-1"></td>`, st, counters[i])
			}
			b.rawf(`<td><input type="number" min="0" data-stat="minutes_played" value="%d" class="w-14 border rounded px-1"></td>`, pl.Line.MinutesPlayed)
			b.raw(`</tr>`)
		}
	}
	b.raw(`</tbody></table><button onclick="courtside.saveAll()" class="mt-3 rounded bg-gray-800 text-white px-4 py-1">Save box score</button></details>`)
}

const scoresheetScript = `<script>
const courtside = (() => {
  const root = document.getElementById('scoresheet');
  const game = root.dataset.game;
  const quarters = parseInt(root.dataset.quarters, 10);

  async function post(path, body) {
    const res = await fetch('/scoresheet/' + game + path, {
      method: 'POST',
      headers: {'Content-Type': 'application/json', 'Accept': 'application/json'},
      body: JSON.stringify(body),
    });
    const data = await res.json().catch(() => ({}));
    if (!res.ok) {
      document.getElementById('scoresheet-error').textContent = data.error || res.statusText;
      return null;
    }
    window.location.reload();
    return data;
  }

  async function state() {
    const res = await fetch('/scoresheet/' + game + '/state', {headers: {'Accept': 'application/json'}});
    return res.json();
  }

  return {
    update: (fields) => post('/update-state', fields),
    shot: (player, points, made, quarter) => post('/field-goal', {player_id: player, points, made, quarter}),
    stat: (player, stat_type, value, quarter) => post('/stat', {player_id: player, stat_type, value, quarter}),
    complete: () => confirm('Complete this game?') && post('/complete', {}),
    async quarter(delta) {
      const s = await state();
      const q = Math.min(Math.max(s.quarter + delta, 1), quarters);
      return post('/update-state', {quarter: q});
    },
    setClock() {
      const v = parseInt(document.getElementById('clock-input').value, 10);
      return post('/update-state', {time_remaining: v});
    },
    async teamCounter(side, counter, delta) {
      const s = await state();
      const key = 'team_' + side + '_' + counter;
      return post('/update-state', {[key]: Math.max(s[key] + delta, 0)});
    },
    saveLineup(side) {
      const ids = [...document.querySelectorAll('[data-side="' + side + '"] .lineup:checked')].map(el => el.value);
      return post('/update-state', {['team_' + side + '_active_players']: ids});
    },
    saveAll() {
      const entries = [...document.querySelectorAll('.box-row')].map(row => {
        const entry = {player_id: row.dataset.player};
        row.querySelectorAll('[data-stat]').forEach(input => { entry[input.dataset.stat] = parseInt(input.value || '0', 10); });
        return entry;
      });
      return post('/save-stats', {stats: entries});
    },
  };
})();
</script>`
