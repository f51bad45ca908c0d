package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
)

func TestPageRequest_DefaultPage_AplicaValoresPorDefecto(t *testing.T) {
	var p dto.PageRequest
	p.DefaultPage()

	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestPageRequest_DefaultPage_AcotaLimiteMaximo(t *testing.T) {
	p := dto.PageRequest{Limit: 500, Offset: -3}
	p.DefaultPage()

	assert.Equal(t, 100, p.Limit, "el límite se acota al máximo permitido")
	assert.Equal(t, 0, p.Offset, "offset negativo se normaliza a cero")
}

func TestPageRequest_DefaultPage_RespetaValoresValidos(t *testing.T) {
	p := dto.PageRequest{Limit: 50, Offset: 10}
	p.DefaultPage()

	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 10, p.Offset)
}
