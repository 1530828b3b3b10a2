package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/featherpress/featherpress/models"
	"github.com/featherpress/featherpress/store"
	"github.com/featherpress/featherpress/utils"
)

const tokenLifetime = 72 * time.Hour

// AuthController handles registration, login and session management.
type AuthController struct {
	users *store.UserStore
}

// NewAuthController creates an AuthController.
func NewAuthController(users *store.UserStore) *AuthController {
	return &AuthController{users: users}
}

func sanitizeUserResponse(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	}
}

// Register creates a local account with a bcrypt-hashed password.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40601, "invalid request payload")
		return
	}

	user, err := a.users.Register(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		handleStoreError(ctx, err, 50601, "failed to create user")
		return
	}

	utils.Created(ctx, gin.H{"user": sanitizeUserResponse(user)})
}

// Login verifies credentials and issues a session token. The response never
// reveals whether the username or the password was wrong.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40602, "invalid request payload")
		return
	}

	user, err := a.users.Authenticate(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		handleStoreError(ctx, err, 50602, "failed to log in")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50603, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  sanitizeUserResponse(user),
	})
}

// Logout invalidates the token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(tokenLifetime)
	if claims.RegisteredClaims.ExpiresAt != nil {
		expiresAt = claims.RegisteredClaims.ExpiresAt.Time
	}

	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's account.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := a.users.FindByID(userID)
	if err != nil {
		handleStoreError(ctx, err, 50604, "failed to load user")
		return
	}
	utils.Success(ctx, gin.H{"user": sanitizeUserResponse(user)})
}
