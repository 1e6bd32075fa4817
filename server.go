package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Zachkp/folio/internal/card"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/panel"
	"github.com/Zachkp/folio/internal/portfolio"
	"github.com/Zachkp/folio/internal/sections"
	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/theme"
	"github.com/Zachkp/folio/internal/view"
)

const themeContextKey = "theme"

type server struct {
	cfg      config.Config
	log      *logging.Logger
	db       *store.DB
	source   portfolio.Source
	holder   *portfolio.Holder
	renderer *view.Renderer
	images   card.ImageResolver
	sections *sections.Builder

	// contact is the backend behind POST /api/contact/submit.
	contact *contact.Service
	// submitter is where the contact form sends submissions.
	submitter contact.Submitter

	admin *adminAuth
}

func newServer(cfg config.Config, log *logging.Logger, db *store.DB, src portfolio.Source) (*server, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}

	images := card.ImageResolver{BaseURL: cfg.UploadBaseURL, Prefix: cfg.UploadPrefix}
	s := &server{
		cfg:      cfg,
		log:      log,
		db:       db,
		source:   src,
		holder:   &portfolio.Holder{},
		renderer: renderer,
		images:   images,
		sections: &sections.Builder{Renderer: renderer, Images: images, Log: log.With("component", "sections")},
		contact: &contact.Service{
			Archive: db,
			Log:     log.With("component", "contact"),
		},
		admin: newAdminAuth(cfg.Admin, log.With("component", "admin")),
	}

	if cfg.SMTP.Enabled() {
		s.contact.Mailer = contact.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.To)
	}

	s.submitter = s.contact
	if cfg.ContactEndpoint != "" {
		s.submitter = &contact.HTTPSubmitter{BaseURL: cfg.ContactEndpoint}
	}

	return s, nil
}

// loadPortfolio fetches the document once and publishes it.
func (s *server) loadPortfolio(ctx context.Context) error {
	start := time.Now()
	snap, err := s.holder.Load(ctx, s.source)
	if err != nil {
		s.log.Error(err, "failed to load portfolio data", "source", s.source.String())
		return err
	}

	for _, w := range snap.Warnings {
		s.log.Warn("portfolio entry dropped", "section", w.Section, "index", w.Index, "reason", w.Message)
	}
	s.log.Info("portfolio data loaded", "source", snap.Source, "took", time.Since(start).String())
	return nil
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(s.renderer.Templates())
	r.Use(gin.Recovery(), s.requestLogger(), s.visitorTrackingMiddleware(), s.themeMiddleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.GET("/healthz", func(c *gin.Context) {
		if err := s.db.Ping(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	// Home page route
	r.GET("/", s.handleIndex)

	// HTMX panel fragment: one section with the activated entry selected
	r.GET("/sections/:name", s.handleSection)

	r.POST("/theme/toggle", s.handleThemeToggle)

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact-form", contactView{})
	})
	r.POST("/contact", s.handleContactForm)

	// Backend endpoint the form posts to when no external endpoint is configured
	r.POST(contact.SubmitPath, s.handleContactSubmit)

	s.setupAdminRoutes(r)
	return r
}

// requestLogger writes one structured line per request.
func (s *server) requestLogger() gin.HandlerFunc {
	log := s.log.With("component", "http")
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		log.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"htmx", c.GetHeader("HX-Request") == "true",
		)
	}
}

// themeMiddleware builds the per-visitor theme context from the cookie.
func (s *server) themeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, err := theme.Init(c.Request.Context(), cookieThemeStore{c: c})
		if err != nil {
			s.log.Warn("theme preference unreadable, using default", "error", err.Error())
		}
		c.Set(themeContextKey, tc)
		c.Next()
	}
}

func themeFrom(c *gin.Context) *theme.Context {
	if v, ok := c.Get(themeContextKey); ok {
		if tc, ok := v.(*theme.Context); ok {
			return tc
		}
	}
	tc, _ := theme.Init(c.Request.Context(), nil)
	return tc
}

func (s *server) handleIndex(c *gin.Context) {
	snap, _ := s.holder.Snapshot()
	c.HTML(http.StatusOK, "index", s.buildPage(snap, themeFrom(c)))
}

func (s *server) handleSection(c *gin.Context) {
	name := c.Param("name")
	if !sections.Known(name) {
		c.String(http.StatusNotFound, "unknown section")
		return
	}

	sel := parseSelection(c)
	snap, _ := s.holder.Snapshot()
	v, ok := s.sections.Panel(name, snap, &sel)
	if !ok {
		c.String(http.StatusNotFound, "section not available")
		return
	}
	c.HTML(http.StatusOK, "panel", v)
}

// parseSelection reads i (activated entry), s (current selection), v
// (collection identity) and key. Missing or malformed numbers read as 0.
func parseSelection(c *gin.Context) sections.Selection {
	atoi := func(key string) int {
		n, err := strconv.Atoi(c.Query(key))
		if err != nil {
			return 0
		}
		return n
	}
	return sections.Selection{
		Index:    atoi("i"),
		Selected: atoi("s"),
		Identity: c.Query("v"),
		Key:      c.Query("key"),
	}
}

func (s *server) handleThemeToggle(c *gin.Context) {
	tc := themeFrom(c)
	if err := tc.Toggle(c.Request.Context()); err != nil {
		s.log.Error(err, "failed to persist theme preference")
	}

	if c.GetHeader("HX-Request") != "true" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "theme", tc)
}

func (s *server) handleContactForm(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		s.log.Warn("malformed contact form", "error", err.Error())
	}

	var notes contact.Notifications
	if err := form.Submit(c.Request.Context(), s.submitter, &notes); err != nil {
		var vErr *contact.ValidationError
		if !errors.As(err, &vErr) {
			s.log.Error(err, "contact submission failed")
		}
	}

	cv := contactView{Form: form}
	if last, ok := notes.Last(); ok {
		cv.Notification = &last
	}
	c.HTML(http.StatusOK, "contact-form", cv)
}

func (s *server) handleContactSubmit(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	err := s.contact.Submit(c.Request.Context(), sub)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": contact.MsgSent})
		return
	}

	var vErr *contact.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}
	s.log.Error(err, "contact delivery failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": contact.MsgFailed})
}

// page is the model for the "index" template.
type page struct {
	Title       string
	Theme       *theme.Context
	Loading     bool
	About       *portfolio.About
	Headers     []portfolio.Link
	LeftSides   []portfolio.Link
	Panels      []panel.View
	ShowContact bool
	ContactInfo *portfolio.Contact
	Contact     contactView
	Footer      *portfolio.Footer
}

type contactView struct {
	Form         contact.Form
	Notification *contact.Notification
}

func (s *server) buildPage(snap *portfolio.Snapshot, tc *theme.Context) page {
	p := page{Title: "Portfolio", Theme: tc, Panels: s.sections.All(snap)}
	if snap == nil {
		p.Loading = true
		return p
	}

	d := snap.Data
	if about, ok := d.About.Get(); ok {
		about.Image = s.images.Resolve(about.Image)
		p.About = &about
		p.Title = about.Name
	}
	p.Headers = d.Headers.OrZero()
	p.LeftSides = d.LeftSides.OrZero()
	if info, ok := d.Contacts.Get(); ok {
		p.ShowContact = true
		p.ContactInfo = &info
	}
	if footer, ok := d.Footer.Get(); ok {
		p.Footer = &footer
	}
	return p
}
