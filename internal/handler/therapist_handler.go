package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/model"
	"github.com/fleveque/therapist-finder/internal/shell"
)

// TherapistHandler is the JSON view of the same search the page runs.
type TherapistHandler struct {
	finder shell.Finder
	logger *zap.Logger
}

// NewTherapistHandler creates a TherapistHandler.
func NewTherapistHandler(finder shell.Finder, logger *zap.Logger) *TherapistHandler {
	return &TherapistHandler{
		finder: finder,
		logger: logger,
	}
}

type therapistsResponse struct {
	Zipcode    string            `json:"zipcode"`
	Therapists []model.Therapist `json:"therapists"`
}

// List returns therapists near a zipcode.
// Route: GET /api/v1/therapists?zipcode=90210
func (h *TherapistHandler) List(c *gin.Context) {
	session := shell.NewSession()
	session.SetZipcode(c.Query("zipcode"))
	session.Search(c.Request.Context(), h.finder)

	st := session.State()
	switch st.Status {
	case shell.StatusResults:
		c.JSON(http.StatusOK, therapistsResponse{
			Zipcode:    st.SearchedZipcode(),
			Therapists: st.Results,
		})
	case shell.StatusError:
		status := http.StatusBadGateway
		if st.ErrorMessage == shell.MsgInvalidZipcode {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": st.ErrorMessage})
	default:
		// Search is synchronous, so idle/loading here is a bug
		h.logger.Error("search ended in unexpected state", zap.String("status", st.Status.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
