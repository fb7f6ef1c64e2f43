package entities

import (
	"fmt"
	"strings"
)

// IdentCode uniquely identifies a material in the requirement table
type IdentCode string

// Quantity represents an integer count of material units
type Quantity int64

// MaterialItem is a row of the material requirement table
type MaterialItem struct {
	IdentCode     IdentCode `json:"ident_code"`
	Description   string    `json:"description"`
	Size          string    `json:"size"`
	UnitOfMeasure string    `json:"unit"`
	RequiredQty   Quantity  `json:"required_qty"`
}

// NewMaterialItem creates a validated MaterialItem
func NewMaterialItem(identCode IdentCode, description, size, unit string, required Quantity) (*MaterialItem, error) {
	if strings.TrimSpace(string(identCode)) == "" {
		return nil, fmt.Errorf("ident code cannot be empty")
	}
	if required < 0 {
		return nil, fmt.Errorf("required quantity cannot be negative, got %d", required)
	}

	return &MaterialItem{
		IdentCode:     IdentCode(strings.TrimSpace(string(identCode))),
		Description:   description,
		Size:          size,
		UnitOfMeasure: unit,
		RequiredQty:   required,
	}, nil
}

// MaterialStatus is the derived receipt/issue position of one ident code.
// Shortage is measured against Received, not Stock.
type MaterialStatus struct {
	IdentCode   IdentCode `json:"ident_code"`
	Description string    `json:"description"`
	Size        string    `json:"size"`
	RequiredQty Quantity  `json:"required_qty"`
	Received    Quantity  `json:"received"`
	Issued      Quantity  `json:"issued"`
	Stock       Quantity  `json:"stock"`
	Shortage    Quantity  `json:"shortage"`
}
