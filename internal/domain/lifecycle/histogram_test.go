package lifecycle_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/lifecycle"
)

func porProvincia(r *entity.Registration) string { return r.Province }

// ──────────────────────────────────────────────────────────────────────────────
// LocationData
// ──────────────────────────────────────────────────────────────────────────────

// Los valores vacíos, nulos o de solo espacios nunca generan bucket.
func TestLocationData_ExcluyeVacios(t *testing.T) {
	regs := []*entity.Registration{
		{Province: "Western"},
		{Province: ""},
		{Province: "   "},
		{Province: "\t"},
		{Province: "Western"},
	}
	buckets := lifecycle.LocationData(regs, porProvincia)
	require.Len(t, buckets, 1)
	assert.Equal(t, "Western", buckets[0].Name)
	assert.Equal(t, 2, buckets[0].Count)
}

// La agrupación es insensible a mayúsculas sobre el valor recortado y el
// nombre mostrado queda en Title Case.
func TestLocationData_AgrupaSinDistinguirMayusculas(t *testing.T) {
	regs := []*entity.Registration{
		{Province: "western"},
		{Province: "Western "},
		{Province: " WESTERN"},
		{Province: "central"},
	}
	buckets := lifecycle.LocationData(regs, porProvincia)
	require.Len(t, buckets, 2)
	assert.Equal(t, lifecycle.Bucket{Name: "Western", Count: 3}, buckets[0])
	assert.Equal(t, lifecycle.Bucket{Name: "Central", Count: 1}, buckets[1])
}

// Orden descendente por conteo con empates estables por orden de entrada.
func TestLocationData_OrdenDescendenteEmpatesEstables(t *testing.T) {
	regs := []*entity.Registration{
		{Province: "Uva"},
		{Province: "Southern"},
		{Province: "Southern"},
		{Province: "Central"},
		{Province: "Western"},
		{Province: "Western"},
	}
	buckets := lifecycle.LocationData(regs, porProvincia)
	require.Len(t, buckets, 4)
	assert.Equal(t, "Southern", buckets[0].Name, "primer empate en 2 va primero por orden de entrada")
	assert.Equal(t, "Western", buckets[1].Name)
	assert.Equal(t, "Uva", buckets[2].Name, "primer empate en 1 va primero por orden de entrada")
	assert.Equal(t, "Central", buckets[3].Name)
	for i := 1; i < len(buckets); i++ {
		assert.GreaterOrEqual(t, buckets[i-1].Count, buckets[i].Count, "orden descendente")
	}
}

// Escenario del contrato: 16 provincias distintas con conteo 1 → solo 15 entradas.
func TestLocationData_TruncaAlTop15(t *testing.T) {
	var regs []*entity.Registration
	for i := 0; i < 16; i++ {
		regs = append(regs, &entity.Registration{Province: fmt.Sprintf("Provincia %02d", i)})
	}
	buckets := lifecycle.LocationData(regs, porProvincia)
	assert.Len(t, buckets, 15)
}

// ──────────────────────────────────────────────────────────────────────────────
// PackageData
// ──────────────────────────────────────────────────────────────────────────────

// Propiedad: todo registro cae en exactamente un bucket; la suma de conteos
// es igual al total de registros.
func TestPackageData_ConservaElTotal(t *testing.T) {
	pkgs := []*entity.Package{
		{ID: "P1", Name: "Premium"},
		{ID: "P2", Name: "Basic"},
	}
	regs := []*entity.Registration{
		{SelectedPackage: "P1"},
		{SelectedPackage: "P1"},
		{SelectedPackage: "P2"},
		{SelectedPackage: "plan-borrado"}, // id crudo como etiqueta
		{SelectedPackage: ""},             // bucket "Standard"
	}

	buckets := lifecycle.PackageData(regs, pkgs)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, len(regs), total, "la suma de conteos debe igualar el total de registros")

	byName := map[string]int{}
	for _, b := range buckets {
		byName[b.Name] = b.Count
	}
	assert.Equal(t, 2, byName["Premium"])
	assert.Equal(t, 1, byName["Basic"])
	assert.Equal(t, 1, byName["plan-borrado"], "id sin resolver se usa como etiqueta cruda")
	assert.Equal(t, 1, byName["Standard"], "sin plan seleccionado cae en Standard")
}

// Sin truncado: más de 15 planes distintos se devuelven todos.
func TestPackageData_SinTruncado(t *testing.T) {
	var regs []*entity.Registration
	for i := 0; i < 20; i++ {
		regs = append(regs, &entity.Registration{SelectedPackage: fmt.Sprintf("plan-%02d", i)})
	}
	buckets := lifecycle.PackageData(regs, nil)
	assert.Len(t, buckets, 20)
}
