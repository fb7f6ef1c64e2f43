package services

import "github.com/vsinha/plantrecon/pkg/domain/entities"

// Shortage is the unmet part of required. It is measured against everything
// ever received, so material already issued to the field still counts.
func Shortage(required, received entities.Quantity) entities.Quantity {
	if received >= required {
		return 0
	}
	return required - received
}
