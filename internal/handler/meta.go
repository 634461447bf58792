package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Gouveia04K/GA-Financas/internal/middleware"
	"github.com/Gouveia04K/GA-Financas/internal/models"
	"github.com/Gouveia04K/GA-Financas/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MetaHandler implements the owner-scoped savings-goal CRUD.
type MetaHandler struct {
	DB *gorm.DB
}

func NewMetaHandler(db *gorm.DB) *MetaHandler {
	return &MetaHandler{DB: db}
}

type metaResp struct {
	ID         uint      `json:"id"`
	Nome       string    `json:"nome"`
	Tipo       string    `json:"tipo"`
	ValorAlvo  string    `json:"valor_alvo"`
	ValorAtual string    `json:"valor_atual"`
	DataLimite string    `json:"data_limite"` // YYYY-MM-DD
	Descricao  string    `json:"descricao"`
	Percentual float64   `json:"percentual"` // derived, read-only
	User       string    `json:"user"`
	CriadaEm   time.Time `json:"criada_em"`
}

func toMetaResp(m *models.Meta, username string) metaResp {
	return metaResp{
		ID:         m.ID,
		Nome:       m.Nome,
		Tipo:       m.Tipo,
		ValorAlvo:  m.ValorAlvo.StringFixed(2),
		ValorAtual: m.ValorAtual.StringFixed(2),
		DataLimite: m.DataLimite.Format("2006-01-02"),
		Descricao:  m.Descricao,
		Percentual: m.Percentual(),
		User:       username,
		CriadaEm:   m.CriadaEm,
	}
}

func (h *MetaHandler) findMeta(c *gin.Context, userID, id uint) *models.Meta {
	var m models.Meta
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, "erro ao consultar meta")
		}
		return nil
	}
	return &m
}

// List returns the caller's metas, newest first.
func (h *MetaHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	var metas []models.Meta
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("criada_em DESC, id DESC").
		Find(&metas).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar metas")
		return
	}

	items := make([]metaResp, 0, len(metas))
	for i := range metas {
		items = append(items, toMetaResp(&metas[i], user.Username))
	}
	c.JSON(http.StatusOK, items)
}

type createMetaReq struct {
	Nome       string           `json:"nome" binding:"required,max=100"`
	Tipo       string           `json:"tipo" binding:"max=50"`
	ValorAlvo  *decimal.Decimal `json:"valor_alvo"`
	ValorAtual *decimal.Decimal `json:"valor_atual"`
	DataLimite string           `json:"data_limite"`
	Descricao  string           `json:"descricao"`
}

// Create stores a new meta owned by the caller; valor_atual starts at 0
// unless supplied.
func (h *MetaHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	var req createMetaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "dados inválidos")
		return
	}
	if req.ValorAlvo == nil {
		util.Error(c, http.StatusBadRequest, "valor_alvo é obrigatório")
		return
	}

	dataLimite, err := util.ParseData(req.DataLimite)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "data_limite inválida, use o formato YYYY-MM-DD")
		return
	}

	m := models.Meta{
		UserID:     user.ID,
		Nome:       strings.TrimSpace(req.Nome),
		Tipo:       req.Tipo,
		ValorAlvo:  req.ValorAlvo.Round(2),
		ValorAtual: decimal.Zero,
		DataLimite: dataLimite,
		Descricao:  req.Descricao,
	}
	if req.ValorAtual != nil {
		m.ValorAtual = req.ValorAtual.Round(2)
	}

	if err := h.DB.Create(&m).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao salvar meta")
		return
	}

	c.JSON(http.StatusCreated, toMetaResp(&m, user.Username))
}

// Retrieve returns a single meta owned by the caller.
func (h *MetaHandler) Retrieve(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	m := h.findMeta(c, user.ID, id)
	if m == nil {
		return
	}
	c.JSON(http.StatusOK, toMetaResp(m, user.Username))
}

type updateMetaReq struct {
	Nome       *string          `json:"nome"`
	Tipo       *string          `json:"tipo"`
	ValorAlvo  *decimal.Decimal `json:"valor_alvo"`
	ValorAtual *decimal.Decimal `json:"valor_atual"`
	DataLimite *string          `json:"data_limite"`
	Descricao  *string          `json:"descricao"`
}

// Update modifies a meta owned by the caller; PUT and PATCH both take
// partial bodies. percentual is derived and cannot be written.
func (h *MetaHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateMetaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "dados inválidos")
		return
	}

	m := h.findMeta(c, user.ID, id)
	if m == nil {
		return
	}

	if req.Nome != nil {
		nome := strings.TrimSpace(*req.Nome)
		if nome == "" {
			util.Error(c, http.StatusBadRequest, "nome é obrigatório")
			return
		}
		m.Nome = nome
	}
	if req.Tipo != nil {
		m.Tipo = *req.Tipo
	}
	if req.ValorAlvo != nil {
		m.ValorAlvo = req.ValorAlvo.Round(2)
	}
	if req.ValorAtual != nil {
		m.ValorAtual = req.ValorAtual.Round(2)
	}
	if req.DataLimite != nil {
		dataLimite, err := util.ParseData(*req.DataLimite)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "data_limite inválida, use o formato YYYY-MM-DD")
			return
		}
		m.DataLimite = dataLimite
	}
	if req.Descricao != nil {
		m.Descricao = *req.Descricao
	}

	if err := h.DB.Save(m).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao salvar meta")
		return
	}

	c.JSON(http.StatusOK, toMetaResp(m, user.Username))
}

// Delete removes a meta owned by the caller.
func (h *MetaHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	m := h.findMeta(c, user.ID, id)
	if m == nil {
		return
	}

	if err := h.DB.Delete(&models.Meta{}, m.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao excluir meta")
		return
	}

	c.Status(http.StatusNoContent)
}
