package controllers

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/config"
	"github.com/vibegram/api-go/models"
	"github.com/vibegram/api-go/repository"
)

type AuthController struct {
	Users *repository.UserRepository
	Cfg   *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{
		Users: repository.NewUserRepository(db),
		Cfg:   cfg,
	}
}

type RegisterRequest struct {
	UserID      string `json:"userId"`
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Friendly pre-checks; the unique indexes backstop the race window
	// between check and insert.
	existing, err := ac.Users.FindByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	}

	existing, err = ac.Users.FindByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), ac.Cfg.BcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = uuid.NewString()
	}
	now := time.Now().UnixMilli()

	user := models.User{
		ID:          userID,
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   now,
		LastSeen:    now,
	}

	if err := ac.Users.Create(&user); err != nil {
		respondError(c, err)
		return
	}

	token, err := ac.signToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user": gin.H{
			"userId":      user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"fullName":    user.FullName,
			"phoneNumber": user.PhoneNumber,
			"createdAt":   user.CreatedAt,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Users.FindByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := ac.Users.UpdateLastSeen(user.ID, time.Now().UnixMilli()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := ac.signToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"userId":         user.ID,
			"username":       user.Username,
			"email":          user.Email,
			"fullName":       user.FullName,
			"phoneNumber":    user.PhoneNumber,
			"profilePicture": user.ProfilePicture,
			"bio":            user.Bio,
			"createdAt":      user.CreatedAt,
		},
	})
}

func (ac *AuthController) signToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ac.Cfg.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(ac.Cfg.JWTSecret))
}
