package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/Gouveia04K/GA-Financas/internal/middleware"
	"github.com/Gouveia04K/GA-Financas/internal/models"
	"github.com/Gouveia04K/GA-Financas/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransacaoHandler implements the owner-scoped transação CRUD plus the
// per-category statistics endpoint.
type TransacaoHandler struct {
	DB *gorm.DB
}

func NewTransacaoHandler(db *gorm.DB) *TransacaoHandler {
	return &TransacaoHandler{DB: db}
}

type transacaoResp struct {
	ID            uint      `json:"id"`
	Descricao     string    `json:"descricao"`
	Valor         string    `json:"valor"` // fixed two decimals, e.g. "250.00"
	Tipo          string    `json:"tipo"`
	Categoria     *uint     `json:"categoria"`
	CategoriaNome *string   `json:"categoria_nome"`
	Data          string    `json:"data"` // YYYY-MM-DD
	Observacao    string    `json:"observacao"`
	User          string    `json:"user"`
	CriadaEm      time.Time `json:"criada_em"`
}

func toTransacaoResp(t *models.Transacao, username string) transacaoResp {
	var catNome *string
	if t.Categoria != nil {
		nome := t.Categoria.Nome
		catNome = &nome
	}
	return transacaoResp{
		ID:            t.ID,
		Descricao:     t.Descricao,
		Valor:         t.Valor.StringFixed(2),
		Tipo:          t.Tipo,
		Categoria:     t.CategoriaID,
		CategoriaNome: catNome,
		Data:          t.Data.Format("2006-01-02"),
		Observacao:    t.Observacao,
		User:          username,
		CriadaEm:      t.CriadaEm,
	}
}

// findTransacao looks a transação up scoped to its owner.
func (h *TransacaoHandler) findTransacao(c *gin.Context, userID, id uint) *models.Transacao {
	var t models.Transacao
	if err := h.DB.Preload("Categoria").
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, "erro ao consultar transação")
		}
		return nil
	}
	return &t
}

// resolveCategoria checks that a categoria id from the payload exists and
// belongs to the caller.
func (h *TransacaoHandler) resolveCategoria(c *gin.Context, userID, catID uint) bool {
	var count int64
	if err := h.DB.Model(&models.Categoria{}).
		Where("id = ? AND user_id = ?", catID, userID).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar categoria")
		return false
	}
	if count == 0 {
		util.Error(c, http.StatusBadRequest, "categoria inválida")
		return false
	}
	return true
}

// List returns the caller's transações, most recent date first; ?tipo=
// narrows to receita or despesa.
func (h *TransacaoHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	q := h.DB.Preload("Categoria").Where("user_id = ?", user.ID)
	if tipo := c.Query("tipo"); tipo == models.TipoReceita || tipo == models.TipoDespesa {
		q = q.Where("tipo = ?", tipo)
	}

	var txs []models.Transacao
	if err := q.Order("data DESC, criada_em DESC, id DESC").Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar transações")
		return
	}

	items := make([]transacaoResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransacaoResp(&txs[i], user.Username))
	}
	c.JSON(http.StatusOK, items)
}

type createTransacaoReq struct {
	Descricao  string           `json:"descricao" binding:"required,max=200"`
	Valor      *decimal.Decimal `json:"valor"`
	Tipo       string           `json:"tipo" binding:"required,oneof=receita despesa"`
	Categoria  *uint            `json:"categoria"`
	Data       string           `json:"data"`
	Observacao string           `json:"observacao"`
}

// Create stores a new transação owned by the caller.
func (h *TransacaoHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	var req createTransacaoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "dados inválidos")
		return
	}
	if req.Valor == nil {
		util.Error(c, http.StatusBadRequest, "valor é obrigatório")
		return
	}

	data, err := util.ParseData(req.Data)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "data inválida, use o formato YYYY-MM-DD")
		return
	}

	if req.Categoria != nil && !h.resolveCategoria(c, user.ID, *req.Categoria) {
		return
	}

	t := models.Transacao{
		UserID:      user.ID,
		Descricao:   req.Descricao,
		Valor:       req.Valor.Round(2),
		Tipo:        req.Tipo,
		CategoriaID: req.Categoria,
		Data:        data,
		Observacao:  req.Observacao,
	}

	if err := h.DB.Create(&t).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao salvar transação")
		return
	}

	if t.CategoriaID != nil {
		var cat models.Categoria
		if err := h.DB.First(&cat, *t.CategoriaID).Error; err == nil {
			t.Categoria = &cat
		}
	}
	c.JSON(http.StatusCreated, toTransacaoResp(&t, user.Username))
}

// Retrieve returns a single transação owned by the caller.
func (h *TransacaoHandler) Retrieve(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	t := h.findTransacao(c, user.ID, id)
	if t == nil {
		return
	}
	c.JSON(http.StatusOK, toTransacaoResp(t, user.Username))
}

type updateTransacaoReq struct {
	Descricao  *string          `json:"descricao"`
	Valor      *decimal.Decimal `json:"valor"`
	Tipo       *string          `json:"tipo"`
	Categoria  *uint            `json:"categoria"`
	Data       *string          `json:"data"`
	Observacao *string          `json:"observacao"`
}

// Update modifies a transação owned by the caller; PUT and PATCH both take
// partial bodies. Sending "categoria": null detaches the categoria.
func (h *TransacaoHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	// raw map to tell "categoria absent" apart from "categoria: null"
	var raw map[string]interface{}
	if err := c.ShouldBindBodyWithJSON(&raw); err != nil {
		util.Error(c, http.StatusBadRequest, "dados inválidos")
		return
	}
	var req updateTransacaoReq
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "dados inválidos")
		return
	}

	t := h.findTransacao(c, user.ID, id)
	if t == nil {
		return
	}

	if req.Descricao != nil {
		if *req.Descricao == "" {
			util.Error(c, http.StatusBadRequest, "descricao é obrigatória")
			return
		}
		t.Descricao = *req.Descricao
	}
	if req.Valor != nil {
		t.Valor = req.Valor.Round(2)
	}
	if req.Tipo != nil {
		if err := util.ValidateTipo(*req.Tipo); err != nil {
			util.Error(c, http.StatusBadRequest, "tipo deve ser receita ou despesa")
			return
		}
		t.Tipo = *req.Tipo
	}
	if _, present := raw["categoria"]; present {
		if req.Categoria != nil {
			if !h.resolveCategoria(c, user.ID, *req.Categoria) {
				return
			}
			t.CategoriaID = req.Categoria
		} else {
			t.CategoriaID = nil
		}
		t.Categoria = nil
	}
	if req.Data != nil {
		data, err := util.ParseData(*req.Data)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "data inválida, use o formato YYYY-MM-DD")
			return
		}
		t.Data = data
	}
	if req.Observacao != nil {
		t.Observacao = *req.Observacao
	}

	// Save would try to upsert the preloaded association; update columns only
	err := h.DB.Model(&models.Transacao{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"descricao":    t.Descricao,
			"valor":        t.Valor,
			"tipo":         t.Tipo,
			"categoria_id": t.CategoriaID,
			"data":         t.Data,
			"observacao":   t.Observacao,
		}).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao salvar transação")
		return
	}

	if t.CategoriaID != nil && t.Categoria == nil {
		var cat models.Categoria
		if err := h.DB.First(&cat, *t.CategoriaID).Error; err == nil {
			t.Categoria = &cat
		}
	}
	c.JSON(http.StatusOK, toTransacaoResp(t, user.Username))
}

// Delete removes a transação owned by the caller.
func (h *TransacaoHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	t := h.findTransacao(c, user.ID, id)
	if t == nil {
		return
	}

	if err := h.DB.Delete(&models.Transacao{}, t.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao excluir transação")
		return
	}

	c.Status(http.StatusNoContent)
}

// ---------- estatísticas ----------

type grupoEstatistica struct {
	Categoria *string `json:"categoria"`
	Total     string  `json:"total"`
}

type grupoAcc struct {
	categoria *string
	total     decimal.Decimal
}

// Estatisticas groups the caller's transações by (categoria, tipo) and sums
// the exact decimal values per group; groups are ordered by categoria nome
// ascending, transações without categoria first.
func (h *TransacaoHandler) Estatisticas(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "não autenticado")
		return
	}

	var txs []models.Transacao
	if err := h.DB.Preload("Categoria").
		Where("user_id = ?", user.ID).
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "erro ao consultar transações")
		return
	}

	// key "" is the NULL-categoria group; real names are prefixed so they
	// can never collide with it
	groups := map[string]map[string]*grupoAcc{
		models.TipoReceita: {},
		models.TipoDespesa: {},
	}
	totalReceitas := decimal.Zero
	totalDespesas := decimal.Zero

	for i := range txs {
		t := &txs[i]
		key := ""
		var nome *string
		if t.Categoria != nil {
			n := t.Categoria.Nome
			nome = &n
			key = "c:" + n
		}

		byCat, ok := groups[t.Tipo]
		if !ok {
			continue
		}
		acc, ok := byCat[key]
		if !ok {
			acc = &grupoAcc{categoria: nome, total: decimal.Zero}
			byCat[key] = acc
		}
		acc.total = acc.total.Add(t.Valor)

		if t.Tipo == models.TipoReceita {
			totalReceitas = totalReceitas.Add(t.Valor)
		} else {
			totalDespesas = totalDespesas.Add(t.Valor)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"receitas":       sortGrupos(groups[models.TipoReceita]),
		"despesas":       sortGrupos(groups[models.TipoDespesa]),
		"total_receitas": totalReceitas.StringFixed(2),
		"total_despesas": totalDespesas.StringFixed(2),
	})
}

func sortGrupos(byCat map[string]*grupoAcc) []grupoEstatistica {
	accs := make([]*grupoAcc, 0, len(byCat))
	for _, acc := range byCat {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool {
		// NULL categoria sorts first, then nome ascending
		if accs[i].categoria == nil {
			return accs[j].categoria != nil
		}
		if accs[j].categoria == nil {
			return false
		}
		return *accs[i].categoria < *accs[j].categoria
	})

	out := make([]grupoEstatistica, 0, len(accs))
	for _, acc := range accs {
		out = append(out, grupoEstatistica{
			Categoria: acc.categoria,
			Total:     acc.total.StringFixed(2),
		})
	}
	return out
}
