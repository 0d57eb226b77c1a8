package controllers

import (
	"bytes"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
	"github.com/shashiranjanraj/pizzeria/pkg/view"
)

// PageRoute maps a site path to the template that renders it.
type PageRoute struct {
	Path     string
	Name     string
	Template string
	Page     view.Page
}

// Pages are the server-rendered screens. The browser script fills them in
// through the JSON API.
var Pages = []PageRoute{
	{"/", "page.index", "index", view.Page{
		Title:       "Pizza Delivery System",
		Description: "Hot pizza, delivered to your door.",
		BodyClass:   "index",
	}},
	{"/account/create", "page.account.create", "accountCreate", view.Page{
		Title:       "Create an Account",
		Description: "Signup is easy and only takes a few seconds.",
		BodyClass:   "accountCreate",
	}},
	{"/account/edit", "page.account.edit", "accountEdit", view.Page{
		Title:     "Account Settings",
		BodyClass: "accountEdit",
	}},
	{"/account/deleted", "page.account.deleted", "accountDeleted", view.Page{
		Title:       "Account Deleted",
		Description: "Your account has been deleted.",
		BodyClass:   "accountDeleted",
	}},
	{"/session/create", "page.session.create", "sessionCreate", view.Page{
		Title:       "Login to your account",
		Description: "Please enter your email address and password to access your account.",
		BodyClass:   "sessionCreate",
	}},
	{"/session/deleted", "page.session.deleted", "sessionDeleted", view.Page{
		Title:       "Logged Out",
		Description: "You have been logged out of your account.",
		BodyClass:   "sessionDeleted",
	}},
	{"/pizza/list", "page.pizza.list", "pizzaList", view.Page{
		Title:     "Our Menu",
		BodyClass: "pizzaList",
	}},
	{"/pizza/cart", "page.pizza.cart", "cartFill", view.Page{
		Title:     "Your Cart",
		BodyClass: "cartFill",
	}},
	{"/pizza/order", "page.pizza.order", "pizzaOrder", view.Page{
		Title:     "Place your Order",
		BodyClass: "pizzaOrder",
	}},
}

type PageController struct {
	views *view.Renderer
	menu  *services.MenuService
}

// Show returns the handler for one page. Pages answer GET only.
func (pc *PageController) Show(p PageRoute) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		if c.Method() != http.MethodGet && c.Method() != http.MethodHead {
			c.Reply(http.StatusMethodNotAllowed, nil, response.HTML)
			return
		}

		page := p.Page
		if p.Template == "pizzaList" && pc.menu != nil {
			page.Data = pc.menu.Items()
		}

		var buf bytes.Buffer
		if err := pc.views.Render(&buf, p.Template, page); err != nil {
			logger.WithCtx(c.Context()).Error("render page", "page", p.Template, "error", err)
			c.Reply(http.StatusInternalServerError, nil, response.HTML)
			return
		}
		c.Reply(http.StatusOK, buf.Bytes(), response.HTML)
	}
}

// StaticController serves the embedded public assets.
type StaticController struct {
	files fs.FS
}

var assetTypes = map[string]string{
	".css":  response.CSS,
	".js":   response.JS,
	".png":  response.PNG,
	".jpg":  response.JPG,
	".jpeg": response.JPG,
	".ico":  response.Favicon,
}

// Public handles GET /public/*.
func (sc *StaticController) Public(c *ctx.Context) {
	name := strings.TrimPrefix(c.Param("*"), "/")
	sc.serve(c, name)
}

// Favicon handles GET /favicon.ico.
func (sc *StaticController) Favicon(c *ctx.Context) {
	sc.serve(c, "favicon.ico")
}

func (sc *StaticController) serve(c *ctx.Context, name string) {
	if c.Method() != http.MethodGet && c.Method() != http.MethodHead {
		c.Reply(http.StatusMethodNotAllowed, nil, response.Plain)
		return
	}
	if name == "" || !fs.ValidPath(name) {
		c.Reply(http.StatusNotFound, nil, response.Plain)
		return
	}

	body, err := fs.ReadFile(sc.files, name)
	if err != nil {
		c.Reply(http.StatusNotFound, nil, response.Plain)
		return
	}

	contentType, ok := assetTypes[strings.ToLower(path.Ext(name))]
	if !ok {
		contentType = response.Plain
	}
	c.Reply(http.StatusOK, body, contentType)
}
