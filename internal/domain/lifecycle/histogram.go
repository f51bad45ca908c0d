package lifecycle

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// locationTopN máximo de entradas en los histogramas de ubicación.
const locationTopN = 15

// defaultPackageName bucket para registros sin plan seleccionado.
const defaultPackageName = "Standard"

// Bucket una barra del histograma: nombre mostrado y conteo.
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

var titleCaser = cases.Title(language.English)

// LocationData agrupa registros por el campo de ubicación extraído con `field`,
// excluyendo valores vacíos o de solo espacios. La agrupación es insensible a
// mayúsculas sobre el valor recortado; el nombre mostrado se normaliza a
// Title Case. Orden descendente por conteo (empates estables por orden de
// entrada), truncado al top 15.
func LocationData(regs []*entity.Registration, field func(*entity.Registration) string) []Bucket {
	counts := map[string]int{}
	var order []string

	for _, r := range regs {
		v := strings.TrimSpace(field(r))
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, Bucket{Name: titleCaser.String(key), Count: counts[key]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	if len(buckets) > locationTopN {
		buckets = buckets[:locationTopN]
	}
	return buckets
}

// PackageData agrupa registros por nombre de plan. El id se resuelve contra el
// catálogo; si no resuelve se usa el id crudo como etiqueta, y si el registro
// no tiene plan se usa el bucket "Standard". Todo registro cae en exactamente
// un bucket (la suma de conteos es igual al total de registros). Sin truncado.
func PackageData(regs []*entity.Registration, pkgs []*entity.Package) []Bucket {
	nameByID := make(map[string]string, len(pkgs))
	for _, p := range pkgs {
		nameByID[p.ID] = p.Name
	}

	counts := map[string]int{}
	var order []string
	for _, r := range regs {
		name := defaultPackageName
		if r.SelectedPackage != "" {
			if resolved, ok := nameByID[r.SelectedPackage]; ok {
				name = resolved
			} else {
				name = r.SelectedPackage
			}
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	buckets := make([]Bucket, 0, len(order))
	for _, name := range order {
		buckets = append(buckets, Bucket{Name: name, Count: counts[name]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}
