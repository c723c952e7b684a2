package views

import (
	"context"

	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/a-h/templ"
)

func AdminUsersPage(p Page, list []users.User) templ.Component {
	p.Title = "Users"
	return Layout(p, component(func(ctx context.Context, b *builder) {
		heading(b, "Users")
		if len(list) == 0 {
			emptyState(b, "No users yet.")
			return
		}

		b.raw(`<table class="w-full bg-white shadow rounded text-sm"><thead><tr class="text-left border-b">`)
		b.raw(`<th class="px-3 py-2">Name</th><th>Email</th><th>Provider</th><th>Joined</th><th>Role</th></tr></thead><tbody>`)
		for _, u := range list {
			provider := "guest"
			if u.Provider != nil {
				provider = *u.Provider
			}
			b.rawf(`<tr class="border-t"><td class="px-3 py-2">%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
				esc(u.Username), esc(u.Email), esc(provider), esc(u.CreatedAt.Format("2006-01-02")))

			if p.User != nil && p.User.ID == u.ID {
				b.rawf(`<span class="text-gray-500">%s (you)</span>`, esc(string(u.Role)))
			} else {
				b.rawf(`<form method="post" action="/admin/users/%s/role" class="flex gap-1">`, u.ID)
				b.raw(`<select name="role" class="border rounded px-1">`)
				for _, r := range users.Roles {
					sel := ""
					if r == u.Role {
						sel = " selected"
					}
					b.rawf(`<option value="%s"%s>%s</option>`, r, sel, esc(string(r)))
				}
				b.raw(`</select><button class="underline">Save</button></form>`)
			}
			b.raw(`</td></tr>`)
		}
		b.raw(`</tbody></table>`)
	}))
}
