package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transacao represents a single income or expense record.
// Valor is an exact decimal (two fractional digits), never a float.
type Transacao struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Descricao   string          `gorm:"size:200;not null"`
	Valor       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tipo        string          `gorm:"size:10;index;not null"` // receita / despesa
	CategoriaID *uint           `gorm:"index"`
	Data        time.Time       `gorm:"type:date;index;not null"` // when the transaction happened
	Observacao  string          `gorm:"type:text"`
	CriadaEm    time.Time       `gorm:"autoCreateTime;index"`

	User      User       `gorm:"constraint:OnDelete:CASCADE"`
	Categoria *Categoria `gorm:"constraint:OnDelete:SET NULL"`
}
