package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/acebook/backend/config"
	"github.com/acebook/backend/internal/club"
	"github.com/acebook/backend/internal/user"
	"github.com/acebook/backend/pkg/resettoken"
	"github.com/acebook/backend/pkg/token"
	"github.com/acebook/backend/pkg/utils"
	"github.com/acebook/backend/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
	logger *zap.Logger
	// mailer MailerService // Interface for a real email provider
}

func NewAuthController(repo AuthRepository, cfg *config.Config, logger *zap.Logger) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
		logger: logger,
	}
}

func (ac *AuthController) generateAndSaveTokens(userID uint, userRole string) (string, string, error) {
	accessToken, err := token.GenerateJWT(userID, userRole, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(userID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    userID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// sendEmail stands in for a real email provider; delivery mechanics are out
// of scope here, the reset link still has to reach the logs for development.
func (ac *AuthController) sendEmail(to, subject, body string) error {
	ac.logger.Info("simulated email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// Register godoc
// @Summary      Register a new account
// @Description  An admin registration founds a new club from club_name and club_slug; a player registration joins an existing club by slug.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Registration details"
// @Success      201  {object} user.Profile "Account created"
// @Failure      400  {object} utils.ErrorResponse "Validation error or invalid input"
// @Failure      404  {object} utils.ErrorResponse "Club not found"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorJSON(c, "Validation failed", validator.ParseError(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := ac.repo.EmailTaken(email)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}
	if taken {
		utils.BadRequestJSON(c, "Email already registered")
		return
	}

	role := user.RolePlayer
	if strings.ToLower(req.Role) == user.RoleAdmin {
		role = user.RoleAdmin
	}

	var memberClub *club.Club
	if role == user.RoleAdmin {
		clubName := strings.TrimSpace(req.ClubName)
		if clubName == "" {
			utils.BadRequestJSON(c, "Club name is required")
			return
		}
		slug := utils.Slugify(req.ClubSlug)
		if slug == "" {
			utils.BadRequestJSON(c, "Club code is required")
			return
		}
		slugTaken, err := ac.repo.ClubSlugTaken(slug)
		if err != nil {
			utils.InternalErrorJSON(c, err)
			return
		}
		if slugTaken {
			utils.BadRequestJSON(c, "Club code is not available")
			return
		}
		memberClub = &club.Club{Name: clubName, Slug: slug}
		if err := ac.repo.CreateClub(memberClub); err != nil {
			ac.logger.Warn("create club", zap.Error(err))
			utils.InternalErrorJSON(c, err)
			return
		}
	} else {
		slug := utils.Slugify(req.ClubSlug)
		if slug == "" {
			utils.BadRequestJSON(c, "Club code is required")
			return
		}
		memberClub, err = ac.repo.GetClubBySlug(slug)
		if err != nil {
			if errors.Is(err, club.ErrClubNotFound) {
				utils.NotFoundJSON(c, "Club")
				return
			}
			utils.InternalErrorJSON(c, err)
			return
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}

	newUser := &user.ClubUser{
		Username: email,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		ClubID:   &memberClub.ID,
		Club:     memberClub,
	}

	// Players get their display name split; admins are addressed by the club.
	if role == user.RolePlayer {
		if fullName := strings.TrimSpace(req.Name); fullName != "" {
			parts := strings.Fields(fullName)
			newUser.FirstName = parts[0]
			if len(parts) > 1 {
				newUser.LastName = strings.Join(parts[1:], " ")
			}
		}
	}

	if err := ac.repo.CreateUser(newUser); err != nil {
		ac.logger.Warn("create user", zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.NewProfile(newUser))
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object} AuthResponse "Token pair and user profile"
// @Failure      401  {object} utils.ErrorResponse "Invalid credentials"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorJSON(c, "Validation failed", validator.ParseError(err))
		return
	}

	currentUser, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	if !utils.CheckPassword(currentUser.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(currentUser.ID, currentUser.Role)
	if err != nil {
		ac.logger.Warn("issue tokens", zap.Uint("user_id", currentUser.ID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.NewProfile(currentUser),
	})
}

// RefreshToken godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token  body  RefreshTokenRequest  true  "Refresh token"
// @Success      200  {object} map[string]string "New access token"
// @Failure      401  {object} utils.ErrorResponse "Invalid or revoked refresh token"
// @Router       /auth/refresh [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	claims, err := token.ValidateJWT(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Invalid refresh token: " + err.Error()})
		return
	}

	// The token must also still exist server-side and not be revoked.
	if _, err := ac.repo.GetRefreshToken(req.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Refresh token is revoked or expired"})
		return
	}

	currentUser, err := ac.repo.GetUserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "User not found"})
		return
	}

	accessToken, err := token.GenerateJWT(currentUser.ID, currentUser.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// ForgotPassword godoc
// @Summary      Request a password reset link
// @Description  Always answers 200 with a generic message so account existence is not leaked.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        email  body  ForgotPasswordRequest  true  "Account email"
// @Success      200  {object} utils.SuccessResponse
// @Router       /auth/password/forgot [post]
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	const detail = "If the email exists, we will send instructions shortly."

	currentUser, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			ac.logger.Warn("forgot password lookup", zap.Error(err))
		}
		utils.SuccessJSON(c, http.StatusOK, detail, nil)
		return
	}

	resetToken, err := resettoken.Generate(currentUser.ID, currentUser.Password, ac.config.JWT.AccessTokenSecret, ac.config.JWT.ResetTokenExpiryMinutes)
	if err != nil {
		ac.logger.Warn("generate reset token", zap.Uint("user_id", currentUser.ID), zap.Error(err))
		utils.SuccessJSON(c, http.StatusOK, detail, nil)
		return
	}

	uid := strconv.FormatUint(uint64(currentUser.ID), 10)
	resetLink := fmt.Sprintf("%s/reset-password?uid=%s&token=%s", ac.config.App.FrontendURL, uid, resetToken)
	body := fmt.Sprintf(
		"We received your password reset request.\n\nUse the secure link: %s\n\nOr enter UID: %s\nToken: %s\n\nIf this wasn't you, ignore this message.",
		resetLink, uid, resetToken,
	)
	if err := ac.sendEmail(currentUser.Email, "Password reset - AceBook", body); err != nil {
		ac.logger.Warn("send reset email", zap.String("email", currentUser.Email), zap.Error(err))
	}

	utils.SuccessJSON(c, http.StatusOK, detail, nil)
}

// ResetPassword godoc
// @Summary      Reset the password with a token from the reset email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body  ResetPasswordRequest  true  "UID, token and new password"
// @Success      200  {object} utils.SuccessResponse
// @Failure      400  {object} utils.ErrorResponse "Invalid or expired token"
// @Router       /auth/password/reset [post]
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	userID, err := strconv.ParseUint(req.UID, 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "Invalid token")
		return
	}

	currentUser, err := ac.repo.GetUserByID(uint(userID))
	if err != nil {
		utils.BadRequestJSON(c, "Invalid token")
		return
	}

	// Verified against the current password hash: changing the password
	// invalidates every previously issued token.
	if _, err := resettoken.Verify(req.Token, currentUser.Password, ac.config.JWT.AccessTokenSecret); err != nil {
		utils.BadRequestJSON(c, "Token expired or invalid")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}
	currentUser.Password = hashedPassword

	if err := ac.repo.UpdateUser(currentUser); err != nil {
		ac.logger.Warn("reset password", zap.Uint("user_id", currentUser.ID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}

	// Force every open session to log in again with the new password.
	if err := ac.repo.InvalidateAllRefreshTokensForUser(currentUser.ID); err != nil {
		ac.logger.Warn("revoke sessions", zap.Uint("user_id", currentUser.ID), zap.Error(err))
	}

	utils.SuccessJSON(c, http.StatusOK, "Password updated successfully", nil)
}

// Me godoc
// @Summary      Get the authenticated user's profile
// @Tags         Auth
// @Produce      json
// @Success      200  {object} user.Profile
// @Failure      401  {object} utils.ErrorResponse "Unauthorized"
// @Router       /me [get]
// @Security     Bearer
func (ac *AuthController) Me(c *gin.Context) {
	currentUser, err := user.CurrentUser(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}
	c.JSON(http.StatusOK, user.NewProfile(currentUser))
}
