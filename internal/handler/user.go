package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Gouveia04K/GA-Financas/internal/middleware"
	"github.com/Gouveia04K/GA-Financas/internal/models"
	"github.com/Gouveia04K/GA-Financas/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// userResp is the public account representation: user fields plus the
// bio/avatar that live on the profile row.
type userResp struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
	Bio        string    `json:"bio"`
	Avatar     string    `json:"avatar"`
}

func toUserResp(u *models.User, p *models.Profile) userResp {
	return userResp{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.CreatedAt,
		Bio:        p.Bio,
		Avatar:     p.Avatar,
	}
}

// UserHandler serves the /users/me endpoints.
type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

func (h *UserHandler) loadProfile(c *gin.Context, userID uint) *models.Profile {
	var profile models.Profile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar perfil")
		return nil
	}
	return &profile
}

// GetMe returns the caller's own account and profile fields.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	profile := h.loadProfile(c, user.ID)
	if profile == nil {
		return
	}

	c.JSON(http.StatusOK, toUserResp(user, profile))
}

type updateMeReq struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
}

// UpdateMe partially updates the caller's account and profile in one
// operation. Only supplied fields are overwritten. There is no id in the
// route on purpose: the operation can only ever touch the caller's row.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	var req updateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			util.FieldErrors(c, http.StatusBadRequest, map[string][]string{
				"username": {"este campo não pode ser em branco."},
			})
			return
		}
		if username != user.Username {
			var count int64
			if err := h.DB.Model(&models.User{}).
				Where("username = ? AND id <> ?", username, user.ID).
				Count(&count).Error; err != nil {
				util.Error(c, http.StatusInternalServerError, "erro ao consultar usuário")
				return
			}
			if count > 0 {
				util.FieldErrors(c, http.StatusBadRequest, map[string][]string{
					"username": {"um usuário com este nome de usuário já existe."},
				})
				return
			}
		}
		user.Username = username
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	profile := h.loadProfile(c, user.ID)
	if profile == nil {
		return
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Avatar != nil {
		profile.Avatar = *req.Avatar
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Save(profile).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao salvar dados")
		return
	}

	c.JSON(http.StatusOK, toUserResp(user, profile))
}
