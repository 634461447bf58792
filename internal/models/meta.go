package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta represents a user-owned savings goal.
type Meta struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"index;not null"`
	Nome       string          `gorm:"size:100;not null"`
	Tipo       string          `gorm:"size:50"` // free-text label, e.g. "Economia"
	ValorAlvo  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ValorAtual decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	DataLimite time.Time       `gorm:"type:date;not null"`
	Descricao  string          `gorm:"type:text"`
	CriadaEm   time.Time       `gorm:"autoCreateTime;index"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// Percentual is the progress towards the goal in percent.
// Derived on read, never stored; 0 when the target is 0.
func (m *Meta) Percentual() float64 {
	if m.ValorAlvo.IsZero() {
		return 0
	}
	pct, _ := m.ValorAtual.Div(m.ValorAlvo).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
