package user

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/acebook/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserController handles club-user administration. Admin only; every query
// is scoped to the admin's own club.
type UserController struct {
	repo   UserRepository
	logger *zap.Logger
}

func NewUserController(repo UserRepository, logger *zap.Logger) *UserController {
	return &UserController{repo: repo, logger: logger}
}

func (uc *UserController) clubScope(c *gin.Context) (*ClubUser, uint, bool) {
	currentUser, err := CurrentUser(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return nil, 0, false
	}
	if currentUser.ClubID == nil {
		utils.ForbiddenJSON(c)
		return nil, 0, false
	}
	return currentUser, *currentUser.ClubID, true
}

// ListUsers godoc
// @Summary      List club users
// @Description  List every account in the admin's club, optionally filtered by role
// @Tags         ClubUsers
// @Produce      json
// @Param        role  query  string  false  "Filter by role (admin or player)"
// @Success      200  {array}  Profile
// @Failure      401  {object} utils.ErrorResponse "Unauthorized"
// @Failure      403  {object} utils.ErrorResponse "Forbidden"
// @Router       /club-users [get]
// @Security     Bearer
func (uc *UserController) ListUsers(c *gin.Context) {
	_, clubID, ok := uc.clubScope(c)
	if !ok {
		return
	}

	users, err := uc.repo.ListByClub(clubID, c.Query("role"))
	if err != nil {
		uc.logger.Warn("list club users", zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, NewProfile(&users[i]))
	}
	c.JSON(http.StatusOK, profiles)
}

// GetUser godoc
// @Summary      Get a club user
// @Tags         ClubUsers
// @Produce      json
// @Param        user_id  path  int  true  "User ID"
// @Success      200  {object} Profile
// @Failure      404  {object} utils.ErrorResponse "User not found"
// @Router       /club-users/{user_id} [get]
// @Security     Bearer
func (uc *UserController) GetUser(c *gin.Context) {
	_, clubID, ok := uc.clubScope(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid user ID")
		return
	}

	target, err := uc.repo.ByIDInClub(uint(userID), clubID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.NotFoundJSON(c, "User")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProfile(target))
}

// UpdateUser godoc
// @Summary      Update a club user
// @Description  Patch name or email. An email change re-checks uniqueness and keeps username in sync.
// @Tags         ClubUsers
// @Accept       json
// @Produce      json
// @Param        user_id  path  int                true  "User ID"
// @Param        user     body  UpdateUserRequest  true  "Fields to update"
// @Success      200  {object} Profile
// @Failure      400  {object} utils.ErrorResponse "Validation error"
// @Failure      404  {object} utils.ErrorResponse "User not found"
// @Router       /club-users/{user_id} [patch]
// @Security     Bearer
func (uc *UserController) UpdateUser(c *gin.Context) {
	_, clubID, ok := uc.clubScope(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	target, err := uc.repo.ByIDInClub(uint(userID), clubID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.NotFoundJSON(c, "User")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	if req.FirstName != nil {
		target.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		target.LastName = *req.LastName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		taken, err := uc.repo.EmailTaken(email, target.ID)
		if err != nil {
			utils.InternalErrorJSON(c, err)
			return
		}
		if taken {
			utils.BadRequestJSON(c, "Email already registered")
			return
		}
		target.Email = email
		target.Username = email
	}

	if err := uc.repo.Update(target); err != nil {
		uc.logger.Warn("update club user", zap.Uint("user_id", target.ID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProfile(target))
}

// DeleteUser godoc
// @Summary      Delete a club user
// @Description  Remove an account from the club. Admins cannot delete themselves.
// @Tags         ClubUsers
// @Produce      json
// @Param        user_id  path  int  true  "User ID"
// @Success      200  {object} utils.SuccessResponse
// @Failure      400  {object} utils.ErrorResponse "Self-deletion forbidden"
// @Failure      404  {object} utils.ErrorResponse "User not found"
// @Router       /club-users/{user_id} [delete]
// @Security     Bearer
func (uc *UserController) DeleteUser(c *gin.Context) {
	currentUser, clubID, ok := uc.clubScope(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid user ID")
		return
	}

	target, err := uc.repo.ByIDInClub(uint(userID), clubID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.NotFoundJSON(c, "User")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	if target.ID == currentUser.ID {
		utils.BadRequestJSON(c, "You cannot remove your own user")
		return
	}

	if err := uc.repo.Delete(target.ID); err != nil {
		uc.logger.Warn("delete club user", zap.Uint("user_id", target.ID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, "User removed", nil)
}
