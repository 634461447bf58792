package router

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCategorias_DefaultsAfterRegister(t *testing.T) {
	r := setupTestServer(t)
	access := newTestUser(t, r, "ana")

	w := doJSON(t, r, http.MethodGet, "/api/categorias/", access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /categorias/ status = %d", w.Code)
	}
	cats := decodeList(t, w)
	if len(cats) != 9 {
		t.Fatalf("default categoria count = %d, want 9", len(cats))
	}

	receitas, despesas := 0, 0
	for _, cat := range cats {
		switch cat["tipo"] {
		case "receita":
			receitas++
		case "despesa":
			despesas++
		default:
			t.Errorf("unexpected tipo %v", cat["tipo"])
		}
		if cat["user"] != "ana" {
			t.Errorf("categoria user = %v, want ana", cat["user"])
		}
	}
	if receitas != 3 || despesas != 6 {
		t.Errorf("receitas/despesas = %d/%d, want 3/6", receitas, despesas)
	}
}

func TestCategorias_CreateAndDefaults(t *testing.T) {
	r := setupTestServer(t)
	access := newTestUser(t, r, "ana")

	w := doJSON(t, r, http.MethodPost, "/api/categorias/", access, map[string]interface{}{
		"nome": "Assinaturas",
		"tipo": "despesa",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /categorias/ status = %d, body %s", w.Code, w.Body.String())
	}
	cat := decodeMap(t, w)
	if cat["icone"] != "bx-folder" {
		t.Errorf("default icone = %v, want bx-folder", cat["icone"])
	}
	if cat["cor"] != "#3c91e6" {
		t.Errorf("default cor = %v, want #3c91e6", cat["cor"])
	}

	// duplicate (owner, nome) pair
	w = doJSON(t, r, http.MethodPost, "/api/categorias/", access, map[string]interface{}{
		"nome": "Assinaturas",
		"tipo": "despesa",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate nome status = %d, want 400", w.Code)
	}

	// but another user may use the same nome
	other := newTestUser(t, r, "bia")
	w = doJSON(t, r, http.MethodPost, "/api/categorias/", other, map[string]interface{}{
		"nome": "Assinaturas",
		"tipo": "despesa",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("same nome for other user status = %d, want 201", w.Code)
	}

	// invalid tipo
	w = doJSON(t, r, http.MethodPost, "/api/categorias/", access, map[string]interface{}{
		"nome": "Outra",
		"tipo": "income",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid tipo status = %d, want 400", w.Code)
	}
}

func TestCategorias_OwnerScoping(t *testing.T) {
	r := setupTestServer(t)
	anaToken := newTestUser(t, r, "ana")
	biaToken := newTestUser(t, r, "bia")

	w := doJSON(t, r, http.MethodPost, "/api/categorias/", anaToken, map[string]interface{}{
		"nome": "Pets",
		"tipo": "despesa",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /categorias/ status = %d", w.Code)
	}
	id := int(decodeMap(t, w)["id"].(float64))
	path := fmt.Sprintf("/api/categorias/%d/", id)

	// every verb against a foreign id answers 404, never 403
	if w := doJSON(t, r, http.MethodGet, path, biaToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("foreign GET status = %d, want 404", w.Code)
	}
	if w := doJSON(t, r, http.MethodPatch, path, biaToken, map[string]interface{}{"nome": "X"}); w.Code != http.StatusNotFound {
		t.Errorf("foreign PATCH status = %d, want 404", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, path, biaToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("foreign DELETE status = %d, want 404", w.Code)
	}

	// the owner still sees it untouched
	w = doJSON(t, r, http.MethodGet, path, anaToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner GET status = %d, want 200", w.Code)
	}
	if nome := decodeMap(t, w)["nome"]; nome != "Pets" {
		t.Errorf("nome = %v, want Pets", nome)
	}
}

func TestCategorias_UpdateAndDelete(t *testing.T) {
	r := setupTestServer(t)
	access := newTestUser(t, r, "ana")

	w := doJSON(t, r, http.MethodPost, "/api/categorias/", access, map[string]interface{}{
		"nome": "Viagens",
		"tipo": "despesa",
		"cor":  "#123abc",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /categorias/ status = %d", w.Code)
	}
	id := int(decodeMap(t, w)["id"].(float64))
	path := fmt.Sprintf("/api/categorias/%d/", id)

	w = doJSON(t, r, http.MethodPatch, path, access, map[string]interface{}{
		"descricao": "férias e passeios",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d, body %s", w.Code, w.Body.String())
	}
	updated := decodeMap(t, w)
	if updated["descricao"] != "férias e passeios" {
		t.Errorf("descricao = %v, want updated value", updated["descricao"])
	}
	if updated["cor"] != "#123abc" {
		t.Errorf("cor = %v, want unchanged #123abc", updated["cor"])
	}

	w = doJSON(t, r, http.MethodDelete, path, access, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, path, access, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", w.Code)
	}
}

func TestCategorias_DeleteDetachesTransacoes(t *testing.T) {
	r := setupTestServer(t)
	access := newTestUser(t, r, "ana")

	w := doJSON(t, r, http.MethodPost, "/api/categorias/", access, map[string]interface{}{
		"nome": "Mercados",
		"tipo": "despesa",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /categorias/ status = %d", w.Code)
	}
	catID := int(decodeMap(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodPost, "/api/transacoes/", access, map[string]interface{}{
		"descricao": "Mercado",
		"valor":     "250.00",
		"tipo":      "despesa",
		"categoria": catID,
		"data":      "2024-01-10",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /transacoes/ status = %d, body %s", w.Code, w.Body.String())
	}
	txID := int(decodeMap(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/categorias/%d/", catID), access, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE categoria status = %d, want 204", w.Code)
	}

	// the transação survives with a null categoria
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/transacoes/%d/", txID), access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET transação after categoria delete status = %d, want 200", w.Code)
	}
	tx := decodeMap(t, w)
	if tx["categoria"] != nil {
		t.Errorf("categoria = %v, want null", tx["categoria"])
	}
	if tx["categoria_nome"] != nil {
		t.Errorf("categoria_nome = %v, want null", tx["categoria_nome"])
	}
	if tx["valor"] != "250.00" {
		t.Errorf("valor = %v, want 250.00", tx["valor"])
	}
}
