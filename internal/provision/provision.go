package provision

import (
	"fmt"
	"time"

	"github.com/Gouveia04K/GA-Financas/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Starter records created for every new account: 3 receita + 6 despesa
// categorias and 3 metas. The tuples are fixed, the meta deadlines are
// relative to the day the account is created.

type categoriaPadrao struct {
	nome  string
	tipo  string
	icone string
	cor   string
}

var categoriasPadrao = []categoriaPadrao{
	// receitas
	{"Salário", models.TipoReceita, "bx-money", "#28a745"},
	{"Investimentos", models.TipoReceita, "bx-line-chart", "#17a2b8"},
	{"Freelance", models.TipoReceita, "bx-laptop", "#ffc107"},
	// despesas
	{"Alimentação", models.TipoDespesa, "bx-restaurant", "#dc3545"},
	{"Moradia", models.TipoDespesa, "bx-home", "#fd7e14"},
	{"Transporte", models.TipoDespesa, "bx-car", "#6c757d"},
	{"Lazer", models.TipoDespesa, "bx-joystick", "#6f42c1"},
	{"Saúde", models.TipoDespesa, "bx-pulse", "#e83e8c"},
	{"Educação", models.TipoDespesa, "bx-book", "#20c997"},
}

type metaPadrao struct {
	nome      string
	tipo      string
	valorAlvo string
	prazoDias int
	descricao string
}

var metasPadrao = []metaPadrao{
	{"Reserva de Emergência", "Economia", "5000.00", 365, "Guardar dinheiro para imprevistos."},
	{"Viagem de Férias", "Lazer", "3000.00", 180, "Juntar dinheiro para a viagem de fim de ano."},
	{"Trocar de Celular", "Bens Materiais", "2500.00", 90, "Economia para o novo modelo."},
}

// ProvisionDefaults creates the profile and starter categorias/metas for a
// freshly created user. Run it inside the same transaction that creates the
// user row, so a failed step never leaves a half-provisioned account.
func ProvisionDefaults(tx *gorm.DB, userID uint) error {
	profile := models.Profile{UserID: userID}
	if err := tx.Create(&profile).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	for _, cp := range categoriasPadrao {
		cat := models.Categoria{
			UserID: userID,
			Nome:   cp.nome,
			Tipo:   cp.tipo,
			Icone:  cp.icone,
			Cor:    cp.cor,
		}
		if err := tx.Create(&cat).Error; err != nil {
			return fmt.Errorf("create categoria %q: %w", cp.nome, err)
		}
	}

	hoje := time.Now()
	for _, mp := range metasPadrao {
		alvo, err := decimal.NewFromString(mp.valorAlvo)
		if err != nil {
			return fmt.Errorf("parse valor_alvo %q: %w", mp.valorAlvo, err)
		}
		meta := models.Meta{
			UserID:     userID,
			Nome:       mp.nome,
			Tipo:       mp.tipo,
			ValorAlvo:  alvo,
			ValorAtual: decimal.Zero,
			DataLimite: hoje.AddDate(0, 0, mp.prazoDias),
			Descricao:  mp.descricao,
		}
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("create meta %q: %w", mp.nome, err)
		}
	}

	return nil
}
