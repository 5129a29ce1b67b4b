package entity

import "time"

// Warehouse representa um armazém operado por uma franquia.
type Warehouse struct {
	ID          string
	FranchiseID string
	Name        string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
