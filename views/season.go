package views

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/service"
	"github.com/a-h/templ"
)

var leagueStatuses = []hoops.LeagueStatus{hoops.LeagueUpcoming, hoops.LeagueActive, hoops.LeagueCompleted, hoops.LeagueCancelled}

type weightField struct {
	name  string
	label string
	value func(hoops.MVPWeights) float64
}

var weightFields = []weightField{
	{"mvp_points", "Points", func(w hoops.MVPWeights) float64 { return w.Points }},
	{"mvp_rebounds", "Rebounds", func(w hoops.MVPWeights) float64 { return w.Rebounds }},
	{"mvp_assists", "Assists", func(w hoops.MVPWeights) float64 { return w.Assists }},
	{"mvp_steals", "Steals", func(w hoops.MVPWeights) float64 { return w.Steals }},
	{"mvp_blocks", "Blocks", func(w hoops.MVPWeights) float64 { return w.Blocks }},
	{"mvp_efficiency", "FG% weight", func(w hoops.MVPWeights) float64 { return w.Efficiency }},
	{"mvp_foul_penalty", "Foul penalty", func(w hoops.MVPWeights) float64 { return w.FoulPenalty }},
	{"mvp_turnover_penalty", "Turnover penalty", func(w hoops.MVPWeights) float64 { return w.TurnoverPenalty }},
}

func SeasonManagementPage(p Page, m *service.SeasonManagement) templ.Component {
	p.Title = "Seasons"
	return Layout(p, component(func(ctx context.Context, b *builder) {
		heading(b, "Seasons")

		b.raw(`<details class="bg-white shadow rounded p-4 mb-6"><summary class="cursor-pointer font-medium">New league</summary>`)
		b.raw(`<form method="post" action="/season-management/leagues" class="mt-3 space-y-2">`)
		leagueFields(b, nil, m.Defaults)
		b.raw(`<button class="rounded bg-orange-600 text-white px-4 py-1">Create league</button></form></details>`)

		if len(m.Leagues) == 0 {
			emptyState(b, "No leagues yet.")
			return
		}
		for _, o := range m.Leagues {
			leagueCard(b, o, m)
		}
	}))
}

func leagueFields(b *builder, l *hoops.League, weights hoops.MVPWeights) {
	name, year := "", ""
	var start, end string
	if l != nil {
		name = l.Name
		year = fmt.Sprint(l.Year)
		start = formatDate(l.StartDate)
		end = formatDate(l.EndDate)
	}
	b.raw(`<div class="grid gap-2 md:grid-cols-4">`)
	b.rawf(`<input name="name" required value="%s" placeholder="League name" class="border rounded px-2 py-1">`, esc(name))
	b.rawf(`<input name="year" type="number" required value="%s" placeholder="Year" class="border rounded px-2 py-1">`, year)
	b.rawf(`<input name="start_date" type="date" value="%s" class="border rounded px-2 py-1">`, start)
	b.rawf(`<input name="end_date" type="date" value="%s" class="border rounded px-2 py-1">`, end)
	b.raw(`</div><div class="grid gap-2 md:grid-cols-4 text-sm">`)
	for _, f := range weightFields {
		b.rawf(`<label class="flex flex-col">%s<input name="%s" type="number" step="0.05" placeholder="%g" class="border rounded px-2 py-1"`,
			esc(f.label), f.name, f.value(weights))
		if l != nil {
			b.rawf(` value="%g"`, f.value(weights))
		}
		b.raw(`></label>`)
	}
	b.raw(`</div>`)
}

func leagueCard(b *builder, o service.LeagueOverview, m *service.SeasonManagement) {
	l := o.League
	base := fmt.Sprintf("/season-management/leagues/%s", l.ID)

	b.raw(`<section class="bg-white shadow rounded p-4 mb-4">`)
	b.rawf(`<div class="flex justify-between items-center"><h2 class="text-lg font-medium">%s</h2>`, esc(leagueTitle(&l)))
	b.raw(`<div class="flex gap-2 items-center text-sm">`)
	if l.IsActive {
		b.raw(`<span class="rounded bg-green-100 text-green-800 px-2">Active</span>`)
	} else {
		b.rawf(`<form method="post" action="%s/activate"><button class="underline">Make active</button></form>`, base)
	}
	b.rawf(`<form method="post" action="%s/status" class="flex gap-1"><select name="status" class="border rounded px-1">`, base)
	for _, s := range leagueStatuses {
		sel := ""
		if s == l.Status {
			sel = " selected"
		}
		b.rawf(`<option value="%s"%s>%s</option>`, s, sel, esc(string(s)))
	}
	b.raw(`</select><button class="underline">Set</button></form></div></div>`)

	b.raw(`<details class="mt-2 text-sm"><summary class="cursor-pointer text-gray-600">Edit</summary>`)
	b.rawf(`<form method="post" action="%s" class="mt-2 space-y-2">`, base)
	leagueFields(b, &l, o.Weights)
	b.raw(`<button class="rounded bg-gray-800 text-white px-4 py-1">Save</button></form></details>`)

	b.raw(`<h3 class="mt-3 text-sm font-medium text-gray-600">Teams</h3><ul class="text-sm">`)
	attached := make(map[string]bool, len(o.Teams))
	for _, t := range o.Teams {
		attached[t.ID.String()] = true
		b.rawf(`<li class="flex justify-between py-1 border-t"><a class="underline" href="/teams/%s">%s</a>`, t.ID, esc(t.Name))
		b.rawf(`<form method="post" action="%s/teams/%s/detach"><button class="text-red-700 underline">Remove</button></form></li>`, base, t.ID)
	}
	b.raw(`</ul>`)

	var available []hoops.Team
	for _, t := range m.AllTeams {
		if !attached[t.ID.String()] {
			available = append(available, t)
		}
	}
	if len(available) > 0 {
		b.rawf(`<form method="post" action="%s/teams" class="mt-2 flex gap-2 text-sm"><select name="team_id" class="border rounded px-1">`, base)
		for _, t := range available {
			b.rawf(`<option value="%s">%s</option>`, t.ID, esc(t.Name))
		}
		b.raw(`</select><button class="underline">Add team</button></form>`)
	}
	b.raw(`</section>`)
}
