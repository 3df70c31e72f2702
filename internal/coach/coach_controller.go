package coach

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/acebook/backend/internal/user"
	"github.com/acebook/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CoachController handles coach-related HTTP requests
type CoachController struct {
	repo   CoachRepository
	logger *zap.Logger
}

func NewCoachController(repo CoachRepository, logger *zap.Logger) *CoachController {
	return &CoachController{repo: repo, logger: logger}
}

func (cc *CoachController) clubScope(c *gin.Context) (uint, bool) {
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

// ListCoaches godoc
// @Summary      List the club's coaches
// @Tags         Coaches
// @Produce      json
// @Success      200  {array}  Coach
// @Failure      401  {object} utils.ErrorResponse "Unauthorized"
// @Router       /coaches [get]
// @Security     Bearer
func (cc *CoachController) ListCoaches(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	coaches, err := cc.repo.ListByClub(clubID)
	if err != nil {
		cc.logger.Warn("list coaches", zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, coaches)
}

// GetCoach godoc
// @Summary      Get a coach
// @Tags         Coaches
// @Produce      json
// @Param        coach_id  path  int  true  "Coach ID"
// @Success      200  {object} Coach
// @Failure      404  {object} utils.ErrorResponse "Coach not found"
// @Router       /coaches/{coach_id} [get]
// @Security     Bearer
func (cc *CoachController) GetCoach(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	coachID, err := strconv.ParseUint(c.Param("coach_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid coach ID")
		return
	}

	coach, err := cc.repo.ByIDInClub(uint(coachID), clubID)
	if err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			utils.NotFoundJSON(c, "Coach")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, coach)
}

// CreateCoach godoc
// @Summary      Create a coach
// @Description  Coach names are unique within the club, case-insensitively.
// @Tags         Coaches
// @Accept       json
// @Produce      json
// @Param        coach  body  CoachInput  true  "Coach information"
// @Success      201  {object} Coach
// @Failure      400  {object} utils.ErrorResponse "Validation error or duplicate name"
// @Router       /coaches [post]
// @Security     Bearer
func (cc *CoachController) CreateCoach(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	var input CoachInput
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
		utils.BadRequestJSON(c, "A coach with this name already exists in the club")
		return
	}

	coach := &Coach{ClubID: clubID, Name: input.Name, Phone: input.Phone}
	if err := cc.repo.Create(coach); err != nil {
		cc.logger.Warn("create coach", zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, coach)
}

// UpdateCoach godoc
// @Summary      Update a coach
// @Tags         Coaches
// @Accept       json
// @Produce      json
// @Param        coach_id  path  int         true  "Coach ID"
// @Param        coach     body  CoachInput  true  "Updated coach information"
// @Success      200  {object} Coach
// @Failure      400  {object} utils.ErrorResponse "Validation error or duplicate name"
// @Failure      404  {object} utils.ErrorResponse "Coach not found"
// @Router       /coaches/{coach_id} [put]
// @Security     Bearer
func (cc *CoachController) UpdateCoach(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	coachID, err := strconv.ParseUint(c.Param("coach_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid coach ID")
		return
	}

	var input CoachInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	coach, err := cc.repo.ByIDInClub(uint(coachID), clubID)
	if err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			utils.NotFoundJSON(c, "Coach")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	taken, err := cc.repo.NameTaken(clubID, input.Name, coach.ID)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}
	if taken {
		utils.BadRequestJSON(c, "A coach with this name already exists in the club")
		return
	}

	coach.Name = input.Name
	coach.Phone = input.Phone

	if err := cc.repo.Update(coach); err != nil {
		cc.logger.Warn("update coach", zap.Uint("coach_id", coach.ID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, coach)
}

// DeleteCoach godoc
// @Summary      Delete a coach
// @Tags         Coaches
// @Produce      json
// @Param        coach_id  path  int  true  "Coach ID"
// @Success      200  {object} utils.SuccessResponse
// @Failure      404  {object} utils.ErrorResponse "Coach not found"
// @Router       /coaches/{coach_id} [delete]
// @Security     Bearer
func (cc *CoachController) DeleteCoach(c *gin.Context) {
	clubID, ok := cc.clubScope(c)
	if !ok {
		return
	}

	coachID, err := strconv.ParseUint(c.Param("coach_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid coach ID")
		return
	}

	coach, err := cc.repo.ByIDInClub(uint(coachID), clubID)
	if err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			utils.NotFoundJSON(c, "Coach")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	if err := cc.repo.Delete(coach.ID); err != nil {
		cc.logger.Warn("delete coach", zap.Uint("coach_id", coach.ID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, "Coach removed", nil)
}
