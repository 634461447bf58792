package models

import "time"

// Tipo values shared by Categoria and Transacao.
const (
	TipoReceita = "receita"
	TipoDespesa = "despesa"
)

// Categoria represents a user-owned income/expense category.
type Categoria struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_categoria_user_nome"`
	Nome      string    `gorm:"size:100;not null;uniqueIndex:idx_categoria_user_nome"`
	Tipo      string    `gorm:"size:10;index;not null"` // receita / despesa
	Icone     string    `gorm:"size:50;default:bx-folder"`
	Cor       string    `gorm:"size:7;default:#3c91e6"`
	Descricao string    `gorm:"type:text"`
	CriadaEm  time.Time `gorm:"autoCreateTime;index"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
