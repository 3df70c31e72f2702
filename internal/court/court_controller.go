package court

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/acebook/backend/internal/user"
	"github.com/acebook/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CourtController handles court-related HTTP requests
type CourtController struct {
	repo   CourtRepository
	logger *zap.Logger
}

func NewCourtController(repo CourtRepository, logger *zap.Logger) *CourtController {
	return &CourtController{repo: repo, logger: logger}
}

func (cc *CourtController) clubScope(c *gin.Context) (uint, bool) {
	currentUser, err := user.CurrentUser(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return 0, false
	}
	if currentUser.ClubID == nil {
		utils.ForbiddenJSON(c)
		return 0, false
	}
	return *currentUser.ClubID, true
}

func applyInput(court *Court, input CourtInput) {
	court.Name = input.Name
	court.Surface = input.Surface
	court.Covered = input.Covered
	court.Lights = input.Lights
	if input.Status != "" {
		court.Status = input.Status
	}
	if input.OpensAt != "" {
		court.OpensAt = input.OpensAt
	}
	if input.ClosesAt != "" {
		court.ClosesAt = input.ClosesAt
	}
}

// ListCourts godoc
// @Summary      List the club's courts
// @Tags         Courts
// @Produce      json
// @Success      200  {array}  Court
// @Failure      401  {object} utils.ErrorResponse "Unauthorized"
// @Router       /courts [get]
// @Security     Bearer
func (cc *CourtController) ListCourts(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	courts, err := cc.repo.ListByClub(clubID)
	if err != nil {
		cc.logger.Warn("list courts", zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, courts)
}

// GetCourt godoc
// @Summary      Get a court
// @Tags         Courts
// @Produce      json
// @Param        court_id  path  int  true  "Court ID"
// @Success      200  {object} Court
// @Failure      404  {object} utils.ErrorResponse "Court not found"
// @Router       /courts/{court_id} [get]
// @Security     Bearer
func (cc *CourtController) GetCourt(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	courtID, err := strconv.ParseUint(c.Param("court_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid court ID")
		return
	}

	court, err := cc.repo.ByIDInClub(uint(courtID), clubID)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			utils.NotFoundJSON(c, "Court")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// CreateCourt godoc
// @Summary      Create a court
// @Description  Court names must be unique within the club.
// @Tags         Courts
// @Accept       json
// @Produce      json
// @Param        court  body  CourtInput  true  "Court information"
// @Success      201  {object} Court
// @Failure      400  {object} utils.ErrorResponse "Validation error or duplicate name"
// @Router       /courts [post]
// @Security     Bearer
func (cc *CourtController) CreateCourt(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	var input CourtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	taken, err := cc.repo.NameTaken(clubID, input.Name, 0)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}
	if taken {
		utils.BadRequestJSON(c, "A court with this name already exists in the club")
		return
	}

	court := &Court{ClubID: clubID}
	applyInput(court, input)

	if err := cc.repo.Create(court); err != nil {
		cc.logger.Warn("create court", zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, court)
}

// UpdateCourt godoc
// @Summary      Update a court
// @Tags         Courts
// @Accept       json
// @Produce      json
// @Param        court_id  path  int         true  "Court ID"
// @Param        court     body  CourtInput  true  "Updated court information"
// @Success      200  {object} Court
// @Failure      400  {object} utils.ErrorResponse "Validation error or duplicate name"
// @Failure      404  {object} utils.ErrorResponse "Court not found"
// @Router       /courts/{court_id} [put]
// @Security     Bearer
func (cc *CourtController) UpdateCourt(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	courtID, err := strconv.ParseUint(c.Param("court_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid court ID")
		return
	}

	var input CourtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	court, err := cc.repo.ByIDInClub(uint(courtID), clubID)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			utils.NotFoundJSON(c, "Court")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	taken, err := cc.repo.NameTaken(clubID, input.Name, court.ID)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}
	if taken {
		utils.BadRequestJSON(c, "A court with this name already exists in the club")
		return
	}

	applyInput(court, input)

	if err := cc.repo.Update(court); err != nil {
		cc.logger.Warn("update court", zap.Uint("court_id", court.ID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// DeleteCourt godoc
// @Summary      Delete a court
// @Tags         Courts
// @Produce      json
// @Param        court_id  path  int  true  "Court ID"
// @Success      200  {object} utils.SuccessResponse
// @Failure      404  {object} utils.ErrorResponse "Court not found"
// @Router       /courts/{court_id} [delete]
// @Security     Bearer
func (cc *CourtController) DeleteCourt(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	courtID, err := strconv.ParseUint(c.Param("court_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid court ID")
		return
	}

	court, err := cc.repo.ByIDInClub(uint(courtID), clubID)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			utils.NotFoundJSON(c, "Court")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	if err := cc.repo.Delete(court.ID); err != nil {
		cc.logger.Warn("delete court", zap.Uint("court_id", court.ID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, "Court removed", nil)
}
