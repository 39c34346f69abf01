package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsMinor(t *testing.T) {
	asOf := time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC)

	seventeen := time.Date(2009, 9, 1, 0, 0, 0, 0, time.UTC)
	eighteen := time.Date(2008, 8, 31, 0, 0, 0, 0, time.UTC)
	justUnder := time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC)

	p := Pessoa{DataNascimento: &seventeen}
	assert.True(t, p.IsMinor(asOf))

	p.DataNascimento = &eighteen
	assert.False(t, p.IsMinor(asOf), "turns 18 on the event day")

	p.DataNascimento = &justUnder
	assert.True(t, p.IsMinor(asOf), "18th birthday is tomorrow")

	p.DataNascimento = nil
	assert.False(t, p.IsMinor(asOf), "unknown birth date is not flagged")
}

func TestLowStock(t *testing.T) {
	p := Produto{EstoqueInicial: 100, EstoqueAtual: 19}
	assert.True(t, p.LowStock())

	p.EstoqueAtual = 20
	assert.False(t, p.LowStock(), "exactly 20% is not low")

	p = Produto{EstoqueInicial: 0, EstoqueAtual: 0}
	assert.False(t, p.LowStock(), "zero initial stock never flags")
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, ValidTipoIngresso("pista"))
	assert.True(t, ValidTipoIngresso("free"))
	assert.False(t, ValidTipoIngresso("backstage"))

	assert.True(t, ValidFormaPagamento("pix"))
	assert.True(t, ValidFormaPagamento("cartao_credito"))
	assert.False(t, ValidFormaPagamento("cheque"))

	assert.True(t, ValidPulseira("maior"))
	assert.True(t, ValidPulseira("staff"))
	assert.False(t, ValidPulseira("verde"))

	assert.True(t, ValidCargo("barman"))
	assert.True(t, ValidCargo("outro"))
	assert.False(t, ValidCargo("dj"))
}
