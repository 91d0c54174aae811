package weather

import "fmt"

// Kind is one of the supported weather states
type Kind int

const (
	Clear Kind = iota
	Cloudy
	Overcast
	Rainy
	Storm
	Snowy
	Foggy
	Windy

	KindCount = 8
)

var kindNames = [...]string{
	"clear", "cloudy", "overcast", "rainy", "storm", "snowy", "foggy", "windy",
}

func (k Kind) String() string {
	if k < Clear || k >= KindCount {
		return fmt.Sprintf("weather(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is a known weather kind
func (k Kind) Valid() bool {
	return k >= Clear && k < KindCount
}

// ParseKind converts a weather name to a Kind
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return Clear, fmt.Errorf("unknown weather kind %q", name)
}
