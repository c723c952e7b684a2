package views

import (
	"context"

	"github.com/AdamBeresnev/courtside/internal/access"
	"github.com/AdamBeresnev/courtside/internal/httputil"
	"github.com/a-h/templ"
)

type navLink struct {
	href   string
	label  string
	action access.Action
}

// Links with an action are only shown to roles allowed to perform it.
var navLinks = []navLink{
	{"/", "Schedule", ""},
	{"/standings", "Standings", ""},
	{"/leaderboard", "Leaderboard", ""},
	{"/teams", "My Teams", ""},
	{"/scoresheet", "Scoresheet", access.ViewScoresheet},
	{"/season-management", "Seasons", access.ManageSeasons},
	{"/admin/users", "Users", access.ManageUsers},
}

func Layout(p Page, body templ.Component) templ.Component {
	return component(func(ctx context.Context, b *builder) {
		title := "Courtside"
		if p.Title != "" {
			title = p.Title + " | Courtside"
		}

		b.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.rawf(`<title>%s</title>`, esc(title))
		b.raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		b.raw(`<script src="https://unpkg.com/htmx.org@2.0.3"></script>`)
		b.raw(`<link rel="stylesheet" href="/static/app.css">`)
		b.raw(`</head><body class="bg-gray-50 text-gray-900 min-h-screen">`)

		b.raw(`<nav class="bg-orange-600 text-white"><div class="max-w-6xl mx-auto px-4 py-3 flex items-center gap-6">`)
		b.raw(`<a href="/" class="font-bold text-lg">Courtside</a><div class="flex gap-4 text-sm">`)
		for _, l := range navLinks {
			if l.action != "" && !access.Can(p.User, l.action) {
				continue
			}
			b.rawf(`<a href="%s" class="hover:underline">%s</a>`, href(l.href), esc(l.label))
		}
		b.raw(`</div><div class="ml-auto flex items-center gap-3 text-sm">`)
		if p.User != nil {
			if p.User.AvatarURL != nil {
				b.rawf(`<img src="%s" alt="" class="w-7 h-7 rounded-full">`, esc(*p.User.AvatarURL))
			}
			b.rawf(`<span>%s <span class="opacity-75">(%s)</span></span>`, esc(p.User.Username), esc(string(p.User.Role)))
			b.raw(`<form method="post" action="/logout"><button class="underline">Log out</button></form>`)
		} else {
			b.raw(`<a href="/login" class="underline">Log in</a>`)
		}
		b.raw(`</div></div></nav>`)

		b.raw(`<main class="max-w-6xl mx-auto px-4 py-6">`)
		if p.Flash != nil {
			class := "bg-green-100 text-green-800 border-green-300"
			if p.Flash.Kind == httputil.FlashError {
				class = "bg-red-100 text-red-800 border-red-300"
			}
			b.rawf(`<div class="mb-4 rounded border px-4 py-2 %s" role="status">%s</div>`, class, esc(p.Flash.Message))
		}
		embed(ctx, b, body)
		b.raw(`</main></body></html>`)
	})
}

func LoginPage(p Page) templ.Component {
	p.Title = "Log in"
	return Layout(p, component(func(ctx context.Context, b *builder) {
		b.raw(`<div class="max-w-sm mx-auto mt-16 bg-white shadow rounded p-6 space-y-4 text-center">`)
		b.raw(`<h1 class="text-2xl font-semibold">Welcome to Courtside</h1>`)
		b.raw(`<p class="text-sm text-gray-600">Log in to follow your league, manage your team or keep score.</p>`)
		b.raw(`<a href="/auth/discord" class="block rounded bg-indigo-600 text-white py-2">Continue with Discord</a>`)
		b.raw(`<a href="/auth/google" class="block rounded bg-white border py-2">Continue with Google</a>`)
		b.raw(`<form method="post" action="/auth/guest"><button class="w-full rounded bg-gray-200 py-2">Continue as guest</button></form>`)
		b.raw(`</div>`)
	}))
}

func emptyState(b *builder, msg string) {
	b.rawf(`<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">%s</div>`, esc(msg))
}

func heading(b *builder, title string) {
	b.rawf(`<h1 class="text-2xl font-semibold mb-4">%s</h1>`, esc(title))
}
