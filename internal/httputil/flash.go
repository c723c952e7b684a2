package httputil

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

const (
	flashKey     = "flash"
	flashKindKey = "flash_kind"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    FlashKind
	Message string
}

func SetFlash(sm *scs.SessionManager, ctx context.Context, kind FlashKind, msg string) {
	sm.Put(ctx, flashKey, msg)
	sm.Put(ctx, flashKindKey, string(kind))
}

// PopFlash returns and clears the pending flash, nil when there is none.
func PopFlash(sm *scs.SessionManager, ctx context.Context) *Flash {
	msg := sm.PopString(ctx, flashKey)
	kind := sm.PopString(ctx, flashKindKey)
	if msg == "" {
		return nil
	}
	if kind == "" {
		kind = string(FlashSuccess)
	}
	return &Flash{Kind: FlashKind(kind), Message: msg}
}

// Redirect sends the browser to url, using HX-Redirect for htmx requests.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// RedirectWithFlash stores a flash and redirects.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url string, kind FlashKind, msg string) {
	SetFlash(sm, r.Context(), kind, msg)
	Redirect(w, r, url)
}

// FormError turns a service error from a form post into an error flash on url.
func FormError(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url string, generic string, err error) {
	status, msg := StatusFor(err, generic)
	if status == http.StatusInternalServerError {
		InternalServerError(w, generic, err)
		return
	}
	RedirectWithFlash(w, r, sm, url, FlashError, msg)
}
