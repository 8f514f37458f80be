package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity es un decimal que además acepta coma como separador decimal en
// entrada JSON ("2,5" además de 2.5 y "2.5"). Los formularios originales de
// la organización usan coma y los clientes la siguen mandando así.
type Quantity struct {
	decimal.Decimal
}

// UnmarshalJSON acepta número JSON, string con punto o string con coma.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	q.Decimal = d
	return nil
}

// MarshalJSON delega en decimal (string JSON).
func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.Decimal.MarshalJSON()
}
