package handler

import (
	"errors"
	"net/http"
	"strings"

	"taskmanager/internal/auth"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints session tokens for users
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

type UserHandler struct {
	repo          repository.UserRepositoryInterface
	notices       repository.NoticeRepositoryInterface
	tokens        TokenIssuer
	tokenMaxAge   int
	secureCookies bool
}

func NewUserHandler(
	repo repository.UserRepositoryInterface,
	notices repository.NoticeRepositoryInterface,
	tokens TokenIssuer,
	tokenMaxAge int,
	secureCookies bool,
) *UserHandler {
	return &UserHandler{
		repo:          repo,
		notices:       notices,
		tokens:        tokens,
		tokenMaxAge:   tokenMaxAge,
		secureCookies: secureCookies,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	IsAdmin  bool   `json:"isAdmin"`
	Role     string `json:"role"`
	Title    string `json:"title"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileRequest struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Role  string `json:"role"`
}

type PasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type ActivateRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// AuthResponse is returned on login; the token is also set as a cookie
type AuthResponse struct {
	Status bool        `json:"status"`
	Token  string      `json:"token"`
	User   *model.User `json:"user"`
}

// Register godoc
// @Summary  Register a user
// @Tags     Users
// @Param    user body RegisterRequest true "User"
// @Success  201
// @Router   /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		internalError(c, "find user", err)
		return
	}
	if existing != nil {
		respondError(c, http.StatusBadRequest, "Email address already exists.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, "hash password", err)
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		IsAdmin:        req.IsAdmin,
		IsActive:       true,
		Role:           req.Role,
		Title:          req.Title,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, "Email address already exists.")
		} else {
			internalError(c, "create user", err)
		}
		return
	}

	// Only admins are signed in straight away
	if user.IsAdmin {
		if _, err := h.issueToken(c, user); err != nil {
			internalError(c, "issue token", err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "user": user, "message": "User registered successfully."})
}

// Login godoc
// @Summary  Log in and receive a session token
// @Tags     Users
// @Param    credentials body LoginRequest true "Credentials"
// @Success  200 {object} AuthResponse
// @Router   /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		internalError(c, "find user", err)
		return
	}
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	if !user.IsActive {
		respondError(c, http.StatusUnauthorized, "User account has been deactivated, contact the administrator.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	token, err := h.issueToken(c, user)
	if err != nil {
		internalError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Status: true, Token: token, User: user})
}

// Logout godoc
// @Summary  Clear the session cookie
// @Tags     Users
// @Success  200
// @Router   /api/user/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookies, true)
	respondOK(c, "Logged out successfully.")
}

// GetTeamList godoc
// @Summary  List users, optionally filtered
// @Tags     Users
// @Param    search query string false "Search in title, name, role and email"
// @Success  200
// @Router   /api/user/get-team [get]
func (h *UserHandler) GetTeamList(c *gin.Context) {
	users, err := h.repo.ListTeam(c.Request.Context(), c.Query("search"))
	if err != nil {
		internalError(c, "list team", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "users": users})
}

// GetNotifications godoc
// @Summary  Unread notices addressed to the caller
// @Tags     Users
// @Success  200
// @Router   /api/user/notifications [get]
func (h *UserHandler) GetNotifications(c *gin.Context) {
	viewer, ok := caller(c)
	if !ok {
		return
	}

	notices, err := h.notices.ListUnread(c.Request.Context(), viewer.UserID)
	if err != nil {
		internalError(c, "list notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "notices": notices})
}

// MarkNotificationRead godoc
// @Summary  Mark one or all notices as read
// @Tags     Users
// @Param    isReadType query string true "all or one"
// @Param    id query string false "Notice ID when isReadType is one"
// @Success  200
// @Router   /api/user/read-noti [put]
func (h *UserHandler) MarkNotificationRead(c *gin.Context) {
	viewer, ok := caller(c)
	if !ok {
		return
	}

	var err error
	switch c.Query("isReadType") {
	case "all":
		err = h.notices.MarkAllRead(c.Request.Context(), viewer.UserID)
	case "one":
		noticeID, parseErr := uuid.Parse(c.Query("id"))
		if parseErr != nil {
			respondError(c, http.StatusBadRequest, "Invalid ID format")
			return
		}
		err = h.notices.MarkRead(c.Request.Context(), viewer.UserID, noticeID)
	default:
		respondError(c, http.StatusBadRequest, "isReadType must be all or one")
		return
	}
	if err != nil {
		internalError(c, "mark notification read", err)
		return
	}
	respondOK(c, "Done")
}

// UpdateProfile godoc
// @Summary  Update name, title and role. Admins may update other users.
// @Tags     Users
// @Param    profile body ProfileRequest true "Profile"
// @Success  200
// @Router   /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	viewer, ok := caller(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	targetID := viewer.UserID
	if viewer.IsAdmin && req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid ID format")
			return
		}
		targetID = id
	}

	user, err := h.repo.GetByID(c.Request.Context(), targetID)
	if err != nil {
		internalError(c, "load user", err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found.")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Title != "" {
		user.Title = req.Title
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := h.repo.UpdateProfile(c.Request.Context(), user); err != nil {
		h.userError(c, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Profile updated successfully.", "user": user})
}

// ChangePassword godoc
// @Summary  Change the caller's password
// @Tags     Users
// @Param    password body PasswordRequest true "New password"
// @Success  200
// @Router   /api/user/change-password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	viewer, ok := caller(c)
	if !ok {
		return
	}

	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, "hash password", err)
		return
	}

	if err := h.repo.UpdatePassword(c.Request.Context(), viewer.UserID, string(hash)); err != nil {
		h.userError(c, "change password", err)
		return
	}
	respondOK(c, "Password changed successfully.")
}

// ActivateUserProfile godoc
// @Summary  Activate or deactivate a user
// @Tags     Users
// @Param    id path string true "User ID"
// @Param    body body ActivateRequest true "Activation"
// @Success  200
// @Router   /api/user/{id} [put]
func (h *UserHandler) ActivateUserProfile(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	if err := h.repo.SetActive(c.Request.Context(), userID, *req.IsActive); err != nil {
		h.userError(c, "set user active", err)
		return
	}

	state := "deactivated"
	if *req.IsActive {
		state = "activated"
	}
	respondOK(c, "User account has been "+state+".")
}

// DeleteUserProfile godoc
// @Summary  Delete a user
// @Tags     Users
// @Param    id path string true "User ID"
// @Success  200
// @Router   /api/user/{id} [delete]
func (h *UserHandler) DeleteUserProfile(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), userID); err != nil {
		h.userError(c, "delete user", err)
		return
	}
	respondOK(c, "User deleted successfully.")
}

func (h *UserHandler) issueToken(c *gin.Context, user *model.User) (string, error) {
	token, err := h.tokens.GenerateToken(user.ID.String())
	if err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, h.tokenMaxAge, "/", "", h.secureCookies, true)
	return token, nil
}

func (h *UserHandler) userError(c *gin.Context, op string, err error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		respondError(c, http.StatusNotFound, "User not found.")
		return
	}
	internalError(c, op, err)
}
