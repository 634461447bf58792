package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Gouveia04K/GA-Financas/internal/middleware"
	"github.com/Gouveia04K/GA-Financas/internal/models"
	"github.com/Gouveia04K/GA-Financas/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoriaHandler implements the owner-scoped categoria CRUD.
type CategoriaHandler struct {
	DB *gorm.DB
}

func NewCategoriaHandler(db *gorm.DB) *CategoriaHandler {
	return &CategoriaHandler{DB: db}
}

type categoriaResp struct {
	ID        uint      `json:"id"`
	Nome      string    `json:"nome"`
	Tipo      string    `json:"tipo"`
	Icone     string    `json:"icone"`
	Cor       string    `json:"cor"`
	Descricao string    `json:"descricao"`
	User      string    `json:"user"`
	CriadaEm  time.Time `json:"criada_em"`
}

func toCategoriaResp(cat *models.Categoria, username string) categoriaResp {
	return categoriaResp{
		ID:        cat.ID,
		Nome:      cat.Nome,
		Tipo:      cat.Tipo,
		Icone:     cat.Icone,
		Cor:       cat.Cor,
		Descricao: cat.Descricao,
		User:      username,
		CriadaEm:  cat.CriadaEm,
	}
}

// parseIDParam reads the :id route parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusNotFound, "não encontrado")
		return 0, false
	}
	return uint(id), true
}

// findCategoria looks a categoria up scoped to its owner. A foreign id is
// indistinguishable from a missing one: both answer 404.
func (h *CategoriaHandler) findCategoria(c *gin.Context, userID, id uint) *models.Categoria {
	var cat models.Categoria
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, "erro ao consultar categoria")
		}
		return nil
	}
	return &cat
}

// List returns the caller's categorias, newest first.
func (h *CategoriaHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	var cats []models.Categoria
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("criada_em DESC, id DESC").
		Find(&cats).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar categorias")
		return
	}

	items := make([]categoriaResp, 0, len(cats))
	for i := range cats {
		items = append(items, toCategoriaResp(&cats[i], user.Username))
	}
	c.JSON(http.StatusOK, items)
}

type createCategoriaReq struct {
	Nome      string `json:"nome" binding:"required,max=100"`
	Tipo      string `json:"tipo" binding:"required,oneof=receita despesa"`
	Icone     string `json:"icone" binding:"max=50"`
	Cor       string `json:"cor" binding:"max=7"`
	Descricao string `json:"descricao"`
}

// Create stores a new categoria. The owner is always the caller, whatever
// the payload says.
func (h *CategoriaHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	var req createCategoriaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "dados inválidos")
		return
	}

	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" {
		util.Error(c, http.StatusBadRequest, "nome é obrigatório")
		return
	}
	if req.Cor != "" {
		if err := util.ValidateCor(req.Cor); err != nil {
			util.Error(c, http.StatusBadRequest, "cor inválida, use o formato #rrggbb")
			return
		}
	}

	var count int64
	if err := h.DB.Model(&models.Categoria{}).
		Where("user_id = ? AND nome = ?", user.ID, req.Nome).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar categorias")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "categoria com este nome já existe")
		return
	}

	cat := models.Categoria{
		UserID:    user.ID,
		Nome:      req.Nome,
		Tipo:      req.Tipo,
		Icone:     req.Icone,
		Cor:       req.Cor,
		Descricao: req.Descricao,
	}
	if cat.Icone == "" {
		cat.Icone = "bx-folder"
	}
	if cat.Cor == "" {
		cat.Cor = "#3c91e6"
	}

	if err := h.DB.Create(&cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao salvar categoria")
		return
	}

	c.JSON(http.StatusCreated, toCategoriaResp(&cat, user.Username))
}

// Retrieve returns a single categoria owned by the caller.
func (h *CategoriaHandler) Retrieve(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cat := h.findCategoria(c, user.ID, id)
	if cat == nil {
		return
	}
	c.JSON(http.StatusOK, toCategoriaResp(cat, user.Username))
}

type updateCategoriaReq struct {
	Nome      *string `json:"nome"`
	Tipo      *string `json:"tipo"`
	Icone     *string `json:"icone"`
	Cor       *string `json:"cor"`
	Descricao *string `json:"descricao"`
}

// Update modifies a categoria owned by the caller; PUT and PATCH both take
// partial bodies.
func (h *CategoriaHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateCategoriaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "dados inválidos")
		return
	}

	cat := h.findCategoria(c, user.ID, id)
	if cat == nil {
		return
	}

	if req.Nome != nil {
		nome := strings.TrimSpace(*req.Nome)
		if nome == "" {
			util.Error(c, http.StatusBadRequest, "nome é obrigatório")
			return
		}
		var count int64
		if err := h.DB.Model(&models.Categoria{}).
			Where("user_id = ? AND nome = ? AND id <> ?", user.ID, nome, cat.ID).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "erro ao consultar categorias")
			return
		}
		if count > 0 {
			util.Error(c, http.StatusBadRequest, "categoria com este nome já existe")
			return
		}
		cat.Nome = nome
	}
	if req.Tipo != nil {
		if err := util.ValidateTipo(*req.Tipo); err != nil {
			util.Error(c, http.StatusBadRequest, "tipo deve ser receita ou despesa")
			return
		}
		cat.Tipo = *req.Tipo
	}
	if req.Icone != nil {
		cat.Icone = *req.Icone
	}
	if req.Cor != nil {
		if err := util.ValidateCor(*req.Cor); err != nil {
			util.Error(c, http.StatusBadRequest, "cor inválida, use o formato #rrggbb")
			return
		}
		cat.Cor = *req.Cor
	}
	if req.Descricao != nil {
		cat.Descricao = *req.Descricao
	}

	if err := h.DB.Save(cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao salvar categoria")
		return
	}

	c.JSON(http.StatusOK, toCategoriaResp(cat, user.Username))
}

// Delete removes a categoria owned by the caller. Transações that pointed
// at it keep existing with a NULL categoria.
func (h *CategoriaHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cat := h.findCategoria(c, user.ID, id)
	if cat == nil {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// detach first so the delete never cascades into transações,
		// whatever the connection's foreign_keys pragma says
		if err := tx.Model(&models.Transacao{}).
			Where("categoria_id = ?", cat.ID).
			Update("categoria_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(cat).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao excluir categoria")
		return
	}

	c.Status(http.StatusNoContent)
}
