package provision

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Gouveia04K/GA-Financas/internal/config"
	"github.com/Gouveia04K/GA-Financas/internal/database"
	"github.com/Gouveia04K/GA-Financas/internal/models"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{
		Username:     "ana",
		PasswordHash: "irrelevant",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Create user failed: %v", err)
	}
	return user
}

func TestProvisionDefaults_CreatesStarterData(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	if err := ProvisionDefaults(db, user.ID); err != nil {
		t.Fatalf("ProvisionDefaults failed: %v", err)
	}

	var profileCount int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&profileCount).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if profileCount != 1 {
		t.Errorf("profile count = %d, want 1", profileCount)
	}

	var cats []models.Categoria
	if err := db.Where("user_id = ?", user.ID).Find(&cats).Error; err != nil {
		t.Fatalf("find categorias: %v", err)
	}
	if len(cats) != 9 {
		t.Fatalf("categoria count = %d, want 9", len(cats))
	}

	receitas, despesas := 0, 0
	byNome := map[string]models.Categoria{}
	for _, cat := range cats {
		byNome[cat.Nome] = cat
		switch cat.Tipo {
		case models.TipoReceita:
			receitas++
		case models.TipoDespesa:
			despesas++
		}
	}
	if receitas != 3 || despesas != 6 {
		t.Errorf("receitas/despesas = %d/%d, want 3/6", receitas, despesas)
	}

	salario, ok := byNome["Salário"]
	if !ok {
		t.Fatal("missing default categoria Salário")
	}
	if salario.Icone != "bx-money" || salario.Cor != "#28a745" || salario.Tipo != models.TipoReceita {
		t.Errorf("Salário = (%s, %s, %s), want (bx-money, #28a745, receita)",
			salario.Icone, salario.Cor, salario.Tipo)
	}

	var metas []models.Meta
	if err := db.Where("user_id = ?", user.ID).Find(&metas).Error; err != nil {
		t.Fatalf("find metas: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("meta count = %d, want 3", len(metas))
	}

	wantPrazos := map[string]int{
		"Reserva de Emergência": 365,
		"Viagem de Férias":      180,
		"Trocar de Celular":     90,
	}
	hoje := time.Now()
	for _, m := range metas {
		prazo, ok := wantPrazos[m.Nome]
		if !ok {
			t.Errorf("unexpected meta %q", m.Nome)
			continue
		}
		if !m.ValorAtual.IsZero() {
			t.Errorf("meta %q valor_atual = %s, want 0", m.Nome, m.ValorAtual)
		}
		want := hoje.AddDate(0, 0, prazo)
		if diff := m.DataLimite.Sub(want); diff < -time.Hour || diff > time.Hour {
			t.Errorf("meta %q data_limite = %v, want ~%v", m.Nome, m.DataLimite, want)
		}
	}

	alvos := map[string]string{
		"Reserva de Emergência": "5000.00",
		"Viagem de Férias":      "3000.00",
		"Trocar de Celular":     "2500.00",
	}
	for _, m := range metas {
		if want := alvos[m.Nome]; m.ValorAlvo.StringFixed(2) != want {
			t.Errorf("meta %q valor_alvo = %s, want %s", m.Nome, m.ValorAlvo.StringFixed(2), want)
		}
	}
}

func TestProvisionDefaults_RollsBackInsideFailedTransaction(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	// running twice inside one transaction hits the (user, nome) unique
	// index; nothing from the transaction may survive
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ProvisionDefaults(tx, user.ID); err != nil {
			return err
		}
		return ProvisionDefaults(tx, user.ID)
	})
	if err == nil {
		t.Fatal("second ProvisionDefaults in one tx error = nil, want unique violation")
	}

	var catCount int64
	if err := db.Model(&models.Categoria{}).Where("user_id = ?", user.ID).Count(&catCount).Error; err != nil {
		t.Fatalf("count categorias: %v", err)
	}
	if catCount != 0 {
		t.Errorf("categoria count after rollback = %d, want 0", catCount)
	}

	var profileCount int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&profileCount).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if profileCount != 0 {
		t.Errorf("profile count after rollback = %d, want 0", profileCount)
	}
}
