package api

import (
	"errors"
	"net/http"

	"nusaquest/internal/model"
	"nusaquest/internal/service"
	"nusaquest/pkg/auth"
	"nusaquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	us         service.UserServiceI
	a          *auth.JWTAuth
	uploadsDir string
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.JWTAuth, uploadsDir string) {
	r := &userRoutes{us: us, a: a, uploadsDir: uploadsDir}

	h := handler.Group("/auth")
	{
		h.POST("/register", r.Register)
		h.POST("/login", r.Login)
	}

	u := handler.Group("/users")
	u.Use(a.AuthMiddleware())
	{
		u.GET("/profile", r.GetProfile)
		u.PUT("/profile", r.UpdateProfile)
	}
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *userRoutes) Register(c *gin.Context) {
	log := logger.Logger()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "full_name, email and password are required"})
		return
	}

	user, err := r.us.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		log.Error("failed to register user", zap.Error(err))
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"data": gin.H{
			"user_id": user.ID,
			"role":    string(user.Role),
		},
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *userRoutes) Login(c *gin.Context) {
	log := logger.Logger()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	user, err := r.us.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}
		log.Error("failed to authenticate user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to login"})
		return
	}

	token, err := r.a.IssueToken(user.ID, string(user.Role))
	if err != nil {
		log.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"data": gin.H{
			"token":         token,
			"user_id":       user.ID,
			"full_name":     user.FullName,
			"email":         user.Email,
			"role":          string(user.Role),
			"level":         user.Level,
			"total_xp":      user.TotalXP,
			"profile_image": user.ProfileImage,
		},
	})
}

func profileResponse(user *model.User) gin.H {
	return gin.H{
		"user_id":       user.ID,
		"full_name":     user.FullName,
		"email":         user.Email,
		"role":          string(user.Role),
		"level":         user.Level,
		"total_xp":      user.TotalXP,
		"profile_image": user.ProfileImage,
	}
}

func (r *userRoutes) GetProfile(c *gin.Context) {
	log := logger.Logger()

	claims, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	user, err := r.us.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Error("failed to get profile", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

func (r *userRoutes) UpdateProfile(c *gin.Context) {
	log := logger.Logger()

	claims, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	fullName := c.PostForm("full_name")
	if fullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "full_name is required"})
		return
	}

	var newImage *string
	var oldImage *string

	if file, err := c.FormFile("profile_image"); err == nil {
		if current, err := r.us.Profile(c.Request.Context(), claims.UserID); err == nil {
			oldImage = current.ProfileImage
		}

		name, err := saveUpload(c, file, r.uploadsDir)
		if err != nil {
			log.Error("failed to save profile image", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save profile image"})
			return
		}
		newImage = &name
	}

	user, err := r.us.UpdateProfile(c.Request.Context(), claims.UserID, fullName, newImage)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		if newImage != nil {
			removeUpload(r.uploadsDir, *newImage)
		}
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update profile"})
		return
	}

	if newImage != nil && oldImage != nil {
		removeUpload(r.uploadsDir, *oldImage)
	}

	c.JSON(http.StatusOK, profileResponse(user))
}
