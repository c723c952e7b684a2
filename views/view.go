package views

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AdamBeresnev/courtside/internal/httputil"
	users "github.com/AdamBeresnev/courtside/internal/user"
	"github.com/a-h/templ"
)

func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	return component.Render(r.Context(), w)
}

// Page carries what the layout needs on every request.
type Page struct {
	Title    string
	User     *users.User
	Flash    *httputil.Flash
	Location *time.Location
}

func (p Page) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// builder collects markup. Text goes through esc, markup through raw.
type builder struct {
	strings.Builder
}

func (b *builder) raw(s string) {
	b.WriteString(s)
}

func (b *builder) rawf(format string, args ...any) {
	fmt.Fprintf(&b.Builder, format, args...)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// href sanitizes a link target the way templ does for href attributes.
func href(u string) string {
	return templ.EscapeString(string(templ.URL(u)))
}

// component renders fn into w once per Render call.
func component(fn func(ctx context.Context, b *builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b builder
		fn(ctx, &b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// embed renders a child component into b.
func embed(ctx context.Context, b *builder, c templ.Component) {
	if c == nil {
		return
	}
	if err := c.Render(ctx, &b.Builder); err != nil {
		b.rawf(`<p class="text-red-600">render error: %s</p>`, esc(err.Error()))
	}
}
