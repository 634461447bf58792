package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Gouveia04K/GA-Financas/internal/config"
	"github.com/Gouveia04K/GA-Financas/internal/models"
	"github.com/Gouveia04K/GA-Financas/internal/provision"
	"github.com/Gouveia04K/GA-Financas/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler implements register, login and token issuance.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	accessMin := cfg.JWT.AccessExpireMin
	if accessMin <= 0 {
		accessMin = 60
	}
	refreshHours := cfg.JWT.RefreshExpireHours
	if refreshHours <= 0 {
		refreshHours = 24
	}
	cost := cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  cfg.JWT.Secret,
		AccessTTL:  time.Duration(accessMin) * time.Minute,
		RefreshTTL: time.Duration(refreshHours) * time.Hour,
		BcryptCost: cost,
	}
}

// ---------- registro ----------

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "username e password são obrigatórios")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("username = ?", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar usuário")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "username já existe")
		return
	}

	if req.Email != "" {
		if err := h.DB.Model(&models.User{}).
			Where("email = ?", req.Email).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "erro ao consultar usuário")
			return
		}
		if count > 0 {
			util.Error(c, http.StatusBadRequest, "email já existe")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao processar senha")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	// user row and starter data succeed or fail together; a failed
	// provisioning step must not leave a half-provisioned account
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return provision.ProvisionDefaults(tx, user.ID)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao criar usuário")
		return
	}

	var profile models.Profile
	if err := h.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar perfil")
		return
	}

	c.JSON(http.StatusCreated, toUserResp(&user, &profile))
}

// ---------- login ----------

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authenticate resolves the username/password pair to a user, or nil when
// the credentials are wrong.
func (h *AuthHandler) authenticate(c *gin.Context, username, password string) *models.User {
	var user models.User
	if err := h.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			util.Error(c, http.StatusInternalServerError, "erro ao consultar usuário")
			return nil
		}
		util.Error(c, http.StatusUnauthorized, "credenciais inválidas")
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		util.Error(c, http.StatusUnauthorized, "credenciais inválidas")
		return nil
	}
	return &user
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "username e password são obrigatórios")
		return
	}

	user := h.authenticate(c, req.Username, req.Password)
	if user == nil {
		return
	}

	access, refresh, err := util.GenerateTokenPair(h.JWTSecret, user.ID, h.AccessTTL, h.RefreshTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao gerar token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":   access,
		"refresh":  refresh,
		"username": user.Username,
		"email":    user.Email,
		"id":       user.ID,
	})
}

// ---------- token pair (simplejwt-compatible endpoints) ----------

// TokenObtain issues an access/refresh pair from credentials.
func (h *AuthHandler) TokenObtain(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if req.Username == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "username e password são obrigatórios")
		return
	}

	user := h.authenticate(c, strings.TrimSpace(req.Username), req.Password)
	if user == nil {
		return
	}

	access, refresh, err := util.GenerateTokenPair(h.JWTSecret, user.ID, h.AccessTTL, h.RefreshTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao gerar token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

type tokenRefreshReq struct {
	Refresh string `json:"refresh"`
}

// TokenRefresh exchanges a valid refresh token for a new access token.
// Refresh tokens are not rotated.
func (h *AuthHandler) TokenRefresh(c *gin.Context) {
	var req tokenRefreshReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		util.Error(c, http.StatusBadRequest, "refresh é obrigatório")
		return
	}

	claims, err := util.ParseToken(h.JWTSecret, req.Refresh)
	if err != nil || claims.TokenType != util.TokenRefresh {
		util.Error(c, http.StatusUnauthorized, "token inválido ou expirado")
		return
	}

	access, err := util.GenerateToken(h.JWTSecret, claims.UserID, util.TokenAccess, h.AccessTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao gerar token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}
