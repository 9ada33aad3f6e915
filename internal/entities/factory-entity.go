package entities

import (
	"equipment-system/pkg/types"
)

// Factory is a tenant/login boundary; it owns equipment. The password is
// stored and compared as plain text by contract.
type Factory struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Password string `json:"-"`

	types.BaseEntity
}
