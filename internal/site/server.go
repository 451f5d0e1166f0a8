// Package site serves the portfolio page that hosts the particle background:
// the page itself, its static assets, the blog preview list and the contact
// form relay.
package site

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Server struct {
	catalog  *Catalog
	relay    Relay
	validate *validator.Validate
	now      func() time.Time
}

func NewServer(catalog *Catalog, relay Relay) *Server {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Server{
		catalog:  catalog,
		relay:    relay,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Router builds the gin engine. Templates are loaded from webDir/templates
// and static files served from webDir/static.
func (s *Server) Router(webDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.LoadHTMLGlob(filepath.Join(webDir, "templates", "*"))
	r.Static("/static", filepath.Join(webDir, "static"))

	r.GET("/", s.index)

	api := r.Group("/api")
	{
		api.GET("/posts", s.listPosts)
		api.GET("/posts/:id", s.getPost)
		api.POST("/contact", s.submitContact)
	}

	return r
}

// index renders the page; ?all=true expands the blog list.
func (s *Server) index(ctx *gin.Context) {
	all, _ := strconv.ParseBool(ctx.Query("all"))
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"year":  s.now().Year(),
		"posts": s.catalog.Previews(all),
	})
}
