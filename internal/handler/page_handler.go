package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/shell"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// PageHandler serves the single search page. Every request gets its own
// session, so the page is a pure function of the query string.
type PageHandler struct {
	finder shell.Finder
	logger *zap.Logger
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(finder shell.Finder, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		finder: finder,
		logger: logger,
	}
}

type cardView struct {
	shell.Card
	// tel: is not on html/template's safe-scheme list, so mark it trusted here.
	PhoneHref template.URL
}

type pageView struct {
	Title   string
	Tagline string
	Kind    string
	Screen  shell.Screen
	Cards   []cardView
}

// Index renders the idle page.
// Route: GET /
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, shell.NewSession())
}

// Search runs one search for ?zipcode= and renders the outcome.
// Route: GET /search?zipcode=90210
func (h *PageHandler) Search(c *gin.Context) {
	session := shell.NewSession()
	session.SetZipcode(c.Query("zipcode"))
	session.Search(c.Request.Context(), h.finder)

	st := session.State()
	h.logger.Debug("page search",
		zap.String("zipcode", st.Zipcode),
		zap.String("status", st.Status.String()),
		zap.Int("results", len(st.Results)),
	)

	h.render(c, session)
}

func (h *PageHandler) render(c *gin.Context, session *shell.Session) {
	screen := shell.Render(session.State())

	view := pageView{
		Title:   shell.AppTitle,
		Tagline: shell.AppTagline,
		Kind:    kindName(screen.Kind),
		Screen:  screen,
	}
	view.Cards = make([]cardView, len(screen.Cards))
	for i, card := range screen.Cards {
		view.Cards[i] = cardView{Card: card, PhoneHref: template.URL(card.PhoneHref)}
	}

	c.HTML(http.StatusOK, "index.html", view)
}

func kindName(k shell.ScreenKind) string {
	switch k {
	case shell.ScreenLoading:
		return "loading"
	case shell.ScreenError:
		return "error"
	case shell.ScreenEmpty:
		return "empty"
	case shell.ScreenResults:
		return "results"
	default:
		return "prompt"
	}
}
