package club

import (
	"net/http"

	"github.com/acebook/backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// ClubController handles club-related HTTP requests
type ClubController struct {
	repo ClubRepository
}

func NewClubController(repo ClubRepository) *ClubController {
	return &ClubController{repo: repo}
}

// CheckSlug godoc
// @Summary      Check club slug availability
// @Description  Normalize a desired club code and report whether it is free to register
// @Tags         Clubs
// @Produce      json
// @Param        slug  query  string  true  "Desired club code"
// @Success      200  {object} SlugCheckResponse
// @Failure      500  {object} utils.ErrorResponse "Internal server error"
// @Router       /clubs/check-slug [get]
func (cc *ClubController) CheckSlug(c *gin.Context) {
	normalized := utils.Slugify(c.Query("slug"))
	isValid := normalized != ""

	available := false
	if isValid {
		taken, err := cc.repo.SlugTaken(normalized)
		if err != nil {
			utils.InternalErrorJSON(c, err)
			return
		}
		available = !taken
	}

	c.JSON(http.StatusOK, SlugCheckResponse{
		Slug:      normalized,
		Valid:     isValid,
		Available: available,
	})
}
