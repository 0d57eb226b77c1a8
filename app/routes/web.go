package routes

import (
	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// RegisterWeb mounts the HTML pages and static assets. They are registered
// for every method so a POST to a page answers 405 in HTML.
func RegisterWeb(r *router.Router, c *controllers.Controllers) {
	for _, p := range controllers.Pages {
		r.Handle(p.Path, p.Name, ctx.Wrap(c.Pages.Show(p)))
	}
	r.Handle("/favicon.ico", "static.favicon", ctx.Wrap(c.Static.Favicon))
	r.Handle("/public/*", "static.public", ctx.Wrap(c.Static.Public))
}
