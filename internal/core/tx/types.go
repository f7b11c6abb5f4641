package tx

import "fmt"

// Type represents a transaction type code
type Type uint16

// Transaction type codes
const (
	TypeInvalid Type = 0xFFFF // Invalid/unknown type

	TypeNewMarket     Type = 1
	TypeBuy           Type = 2
	TypeSell          Type = 3
	TypeSponsoredBurn Type = 4
	TypeBatch         Type = 5
)

var typeNames = map[Type]string{
	TypeNewMarket:     "NewMarket",
	TypeBuy:           "Buy",
	TypeSell:          "Sell",
	TypeSponsoredBurn: "SponsoredBurn",
	TypeBatch:         "Batch",
}

var typeNameMap = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the transaction type name
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// TypeFromName returns the transaction type for a given name
func TypeFromName(name string) (Type, bool) {
	t, ok := typeNameMap[name]
	return t, ok
}
