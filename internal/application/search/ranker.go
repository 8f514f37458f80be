// Package search rankea productos contra una consulta de texto libre para
// selección interactiva. Su normalización es agresiva (acentos y puntuación
// plegados) y por eso jamás se usa para la unicidad de nombres del catálogo:
// "Coca-Cola" y "coca cola" son iguales aquí pero distintos para identidad.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// stripDiacritics descompone a NFD, elimina las marcas combinantes (Mn) y
// recompone. "açúcar" -> "acucar".
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize aplica la normalización de búsqueda: minúsculas, sin
// diacríticos, cualquier corrida de caracteres no alfanuméricos colapsada a
// un solo espacio, sin espacios en los extremos.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Rank filtra y ordena candidatos contra la consulta en cuatro niveles:
//
//	A: el nombre normalizado completo empieza por la consulta completa
//	B: prefijo palabra a palabra en orden posicional ("arroz br" ~ "arroz branco")
//	C: la consulta es substring del nombre
//	D: los tokens de la consulta aparecen en orden, cada uno como prefijo
//	   de algún token del nombre, sin alineación posicional
//
// La salida concatena A+B+C+D; dentro de cada nivel se conserva el orden
// relativo original de los candidatos. Consulta vacía devuelve la entrada
// tal cual. Quien llama decide si un único resultado se auto-selecciona.
func Rank(query string, candidates []entity.Product) []entity.Product {
	q := Normalize(query)
	if q == "" {
		out := make([]entity.Product, len(candidates))
		copy(out, candidates)
		return out
	}
	qTokens := strings.Fields(q)

	var tierA, tierB, tierC, tierD []entity.Product
	for _, p := range candidates {
		name := Normalize(p.Name)
		nTokens := strings.Fields(name)
		switch {
		case strings.HasPrefix(name, q):
			tierA = append(tierA, p)
		case wordwisePrefix(qTokens, nTokens):
			tierB = append(tierB, p)
		case strings.Contains(name, q):
			tierC = append(tierC, p)
		case subsequencePrefix(qTokens, nTokens):
			tierD = append(tierD, p)
		}
	}

	out := make([]entity.Product, 0, len(tierA)+len(tierB)+len(tierC)+len(tierD))
	out = append(out, tierA...)
	out = append(out, tierB...)
	out = append(out, tierC...)
	out = append(out, tierD...)
	return out
}

// wordwisePrefix: cada token i de la consulta es prefijo del token i del
// nombre. Soporta abreviaturas posicionales.
func wordwisePrefix(query, name []string) bool {
	if len(query) > len(name) {
		return false
	}
	for i, q := range query {
		if !strings.HasPrefix(name[i], q) {
			return false
		}
	}
	return true
}

// subsequencePrefix: los tokens de la consulta aparecen en orden como
// prefijos de tokens del nombre, no necesariamente contiguos ni alineados.
func subsequencePrefix(query, name []string) bool {
	j := 0
	for _, q := range query {
		for j < len(name) && !strings.HasPrefix(name[j], q) {
			j++
		}
		if j == len(name) {
			return false
		}
		j++
	}
	return true
}
