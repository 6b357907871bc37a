package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sarrafiye/goldweb/middleware"
	"github.com/sarrafiye/goldweb/models"
	"github.com/sarrafiye/goldweb/utils"
)

// AuthController manages admin accounts and sessions for the management
// area.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// HasUsers reports whether any admin account exists. The front end uses it
// to decide between the bootstrap form and the login form.
func (a *AuthController) HasUsers(ctx *gin.Context) {
	count, err := a.userCount()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to check users")
		return
	}
	utils.Success(ctx, gin.H{"has_users": count > 0})
}

// Register creates the first admin account. Once any account exists the
// endpoint refuses, so it is only usable for bootstrap.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 32 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username must be 3-32 characters")
		return
	}
	if len(req.Password) < 8 {
		utils.Error(ctx, http.StatusBadRequest, 40003, "password must be at least 8 characters")
		return
	}

	count, err := a.userCount()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to check users")
		return
	}
	if count > 0 {
		utils.Error(ctx, http.StatusForbidden, 40301, "admin account already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to hash password")
		return
	}

	user := models.AdminUser{Username: username, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create user")
		return
	}

	utils.Sugar.Infow("admin account created", "username", username)
	utils.Success(ctx, gin.H{"user": publicUser(user)})
}

// Login verifies credentials and issues a session token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	var user models.AdminUser
	if err := a.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid username or password")
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": publicUser(user)})
}

// Me returns the authenticated admin's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	id, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}
	var user models.AdminUser
	if err := a.db.First(&user, id).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40403, "user not found")
		return
	}
	utils.Success(ctx, gin.H{"user": publicUser(user)})
}

func (a *AuthController) userCount() (int64, error) {
	var count int64
	err := a.db.Model(&models.AdminUser{}).Count(&count).Error
	return count, err
}

func publicUser(user models.AdminUser) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	}
}
