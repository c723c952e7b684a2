package views

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/courtside/internal/access"
	"github.com/AdamBeresnev/courtside/internal/hoops"
	"github.com/AdamBeresnev/courtside/internal/service"
	"github.com/AdamBeresnev/courtside/internal/utils"
	"github.com/a-h/templ"
)

func TeamsPage(p Page, mine *service.MyTeams) templ.Component {
	p.Title = "My Teams"
	return Layout(p, component(func(ctx context.Context, b *builder) {
		heading(b, "My Teams")

		if access.Can(p.User, access.CreateTeam) {
			if mine.Coached == nil {
				b.raw(`<form method="post" action="/teams/create" class="bg-white shadow rounded p-4 mb-6 flex gap-2">`)
				b.raw(`<input name="name" maxlength="50" required placeholder="Team name" class="border rounded px-2 py-1 flex-1">`)
				b.raw(`<button class="rounded bg-orange-600 text-white px-4">Create team</button></form>`)
			} else {
				coachedTeam(b, mine.Coached, mine.Roster)
			}
		}

		if access.Can(p.User, access.JoinTeam) {
			b.raw(`<form method="post" action="/teams/join" class="bg-white shadow rounded p-4 mb-6 flex gap-2">`)
			b.raw(`<input name="join_code" maxlength="6" required placeholder="Join code" class="border rounded px-2 py-1 uppercase font-mono">`)
			b.raw(`<button class="rounded bg-orange-600 text-white px-4">Request to join</button></form>`)
		}

		if len(mine.Memberships) > 0 {
			b.raw(`<h2 class="text-lg font-medium mb-2">Memberships</h2><ul class="bg-white shadow rounded divide-y">`)
			for _, m := range mine.Memberships {
				b.rawf(`<li class="px-3 py-2 flex justify-between"><a class="underline" href="/teams/%s">%s</a><span class="text-sm %s">%s</span></li>`,
					m.TeamID, esc(m.TeamName), statusClass(m.Status), esc(string(m.Status)))
			}
			b.raw(`</ul>`)
		} else if mine.Coached == nil {
			emptyState(b, "You are not part of any team yet.")
		}
	}))
}

func statusClass(s hoops.PlayerStatus) string {
	switch s {
	case hoops.PlayerApproved:
		return "text-green-700"
	case hoops.PlayerRejected:
		return "text-red-700"
	}
	return "text-yellow-700"
}

func coachedTeam(b *builder, team *hoops.Team, roster []hoops.RosterEntry) {
	b.raw(`<section class="bg-white shadow rounded p-4 mb-6">`)
	b.rawf(`<div class="flex justify-between items-center mb-3"><h2 class="text-lg font-medium"><a class="underline" href="/teams/%s">%s</a></h2>`,
		team.ID, esc(team.Name))
	b.rawf(`<span class="text-sm">Join code <code class="font-mono bg-gray-100 px-2 py-1 rounded">%s</code></span></div>`, esc(team.JoinCode))

	if len(roster) == 0 {
		emptyState(b, "Share the join code with your players.")
		b.raw(`</section>`)
		return
	}

	b.raw(`<table class="w-full text-sm"><thead><tr class="text-left"><th>Player</th><th>Status</th><th>Jersey / position</th><th></th></tr></thead><tbody>`)
	for _, e := range roster {
		base := fmt.Sprintf("/teams/%s/players/%s", team.ID, e.ID)
		b.rawf(`<tr class="border-t"><td class="py-1">%s</td><td class="%s">%s</td><td>`, esc(e.Username), statusClass(e.Status), esc(string(e.Status)))
		if e.Status == hoops.PlayerApproved {
			jersey := ""
			if e.JerseyNumber != nil {
				jersey = fmt.Sprint(*e.JerseyNumber)
			}
			b.rawf(`<form method="post" action="%s/details" class="flex gap-1">`, base)
			b.rawf(`<input name="jersey_number" type="number" min="0" max="99" value="%s" class="border rounded w-16 px-1">`, jersey)
			b.rawf(`<input name="position" value="%s" placeholder="PG" class="border rounded w-16 px-1">`, esc(utils.OrZero(e.Position)))
			b.raw(`<button class="text-xs underline">Save</button></form>`)
		}
		b.raw(`</td><td class="flex gap-2 py-1">`)
		if e.Status == hoops.PlayerPending {
			b.rawf(`<form method="post" action="%s/approve"><button class="text-green-700 underline">Approve</button></form>`, base)
			b.rawf(`<form method="post" action="%s/reject"><button class="text-red-700 underline">Reject</button></form>`, base)
		}
		b.rawf(`<form method="post" action="%s/remove" onsubmit="return confirm('Remove this player?')"><button class="text-gray-600 underline">Remove</button></form>`, base)
		b.raw(`</td></tr>`)
	}
	b.raw(`</tbody></table></section>`)
}
