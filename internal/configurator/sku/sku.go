// Package sku deterministically encodes a validated configuration into a
// stable variant identifier. Identical input always yields an identical
// SKU, and any priced attribute changing produces a different one.
package sku

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
)

const delimiter = "-"

// Components are the priced attributes encoded into a SKU, in encoding
// order. Codes are the short option codes from the catalog, never raw ids.
type Components struct {
	Brand      string
	SeriesCode string
	DoorType   catalogdomain.DoorType
	WidthIn    float64
	HeightIn   float64
	PanelCount int
	Material   string
	Finish     string
	Glass      string
	Hardware   []string
}

var doorTypeCodes = map[catalogdomain.DoorType]string{
	catalogdomain.DoorTypeBarn:   "BD",
	catalogdomain.DoorTypeBypass: "BP",
	catalogdomain.DoorTypeBifold: "BF",
	catalogdomain.DoorTypePivot:  "PV",
}

var doorTypeByCode = map[string]catalogdomain.DoorType{
	"BD": catalogdomain.DoorTypeBarn,
	"BP": catalogdomain.DoorTypeBypass,
	"BF": catalogdomain.DoorTypeBifold,
	"PV": catalogdomain.DoorTypePivot,
}

// Generate encodes the components. Dimensions are rounded to hundredths of
// an inch before encoding, so float noise like 48.0000001 never produces a
// distinct SKU.
func Generate(c Components) string {
	parts := []string{
		sanitize(c.Brand),
		sanitize(c.SeriesCode),
		doorTypeCodes[c.DoorType],
		"W" + encodeDimension(c.WidthIn),
		"H" + encodeDimension(c.HeightIn),
	}
	if c.PanelCount > 0 {
		parts = append(parts, "P"+strconv.Itoa(c.PanelCount))
	}
	parts = append(parts, "M"+sanitize(c.Material), "F"+sanitize(c.Finish))
	if c.Glass != "" {
		parts = append(parts, "G"+sanitize(c.Glass))
	}
	for _, h := range c.Hardware {
		parts = append(parts, "X"+sanitize(h))
	}
	return strings.Join(parts, delimiter)
}

// Decode parses a SKU back into its components. The first three tokens are
// positional; the rest are recognized by their single-letter prefix.
func Decode(s string) (Components, error) {
	tokens := strings.Split(strings.TrimSpace(strings.ToUpper(s)), delimiter)
	if len(tokens) < 5 {
		return Components{}, fmt.Errorf("%w: %q", catalogdomain.ErrInvalidSKU, s)
	}

	doorType, ok := doorTypeByCode[tokens[2]]
	if !ok {
		return Components{}, fmt.Errorf("%w: unknown door type %q", catalogdomain.ErrInvalidSKU, tokens[2])
	}

	c := Components{
		Brand:      tokens[0],
		SeriesCode: tokens[1],
		DoorType:   doorType,
	}

	for _, token := range tokens[3:] {
		if len(token) < 2 {
			return Components{}, fmt.Errorf("%w: short token %q", catalogdomain.ErrInvalidSKU, token)
		}
		prefix, rest := token[:1], token[1:]
		switch prefix {
		case "W":
			v, err := decodeDimension(rest)
			if err != nil {
				return Components{}, fmt.Errorf("%w: width %q", catalogdomain.ErrInvalidSKU, rest)
			}
			c.WidthIn = v
		case "H":
			v, err := decodeDimension(rest)
			if err != nil {
				return Components{}, fmt.Errorf("%w: height %q", catalogdomain.ErrInvalidSKU, rest)
			}
			c.HeightIn = v
		case "P":
			n, err := strconv.Atoi(rest)
			if err != nil {
				return Components{}, fmt.Errorf("%w: panel count %q", catalogdomain.ErrInvalidSKU, rest)
			}
			c.PanelCount = n
		case "M":
			c.Material = rest
		case "F":
			c.Finish = rest
		case "G":
			c.Glass = rest
		case "X":
			c.Hardware = append(c.Hardware, rest)
		default:
			return Components{}, fmt.Errorf("%w: token %q", catalogdomain.ErrInvalidSKU, token)
		}
	}

	if c.WidthIn == 0 || c.HeightIn == 0 || c.Material == "" || c.Finish == "" {
		return Components{}, fmt.Errorf("%w: missing required components", catalogdomain.ErrInvalidSKU)
	}
	return c, nil
}

// encodeDimension renders inches as integer hundredths, e.g. 48 -> 4800.
func encodeDimension(inches float64) string {
	hundredths := int64(math.Floor(inches*100 + 0.5))
	return strconv.FormatInt(hundredths, 10)
}

func decodeDimension(s string) (float64, error) {
	hundredths, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return float64(hundredths) / 100, nil
}

func sanitize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, delimiter, "")
}
