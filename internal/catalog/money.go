package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Money is a USD amount in cents.
type Money int64

// Dollars returns the amount as a decimal number, for JSON-LD offers.
func (m Money) Dollars() float64 { return float64(m) / 100 }

// String renders the amount with two decimals and no currency symbol.
func (m Money) String() string {
	neg := m < 0
	if neg {
		m = -m
	}
	s := fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
	if neg {
		return "-" + s
	}
	return s
}

// UnmarshalYAML accepts decimal amounts such as 12.99 or "3.49".
func (m *Money) UnmarshalYAML(node *yaml.Node) error {
	v := strings.TrimPrefix(strings.TrimSpace(node.Value), "$")
	if v == "" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q", node.Line, node.Value)
	}
	*m = Money(math.Round(f * 100))
	return nil
}

// DeviceLimit is a simultaneous connection cap. Unlimited marks providers
// without one.
type DeviceLimit int

// Unlimited is the sentinel for providers with no device cap.
const Unlimited DeviceLimit = -1

// IsUnlimited reports whether the provider has no device cap.
func (d DeviceLimit) IsUnlimited() bool { return d == Unlimited }

func (d DeviceLimit) String() string {
	if d.IsUnlimited() {
		return "unlimited"
	}
	return strconv.Itoa(int(d))
}

// UnmarshalYAML accepts an integer or the literal "unlimited".
func (d *DeviceLimit) UnmarshalYAML(node *yaml.Node) error {
	v := strings.ToLower(strings.TrimSpace(node.Value))
	if v == "unlimited" {
		*d = Unlimited
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fmt.Errorf("line %d: invalid device limit %q", node.Line, node.Value)
	}
	*d = DeviceLimit(n)
	return nil
}
