// Package registrar holds the registrar and registrar-account reference
// data. Domains point at accounts by id; the portfolio query layer resolves
// registrar-level filters through this package's directory.
package registrar

import "github.com/google/uuid"

// Registrar is a company domains can be registered with.
type Registrar struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Website string    `json:"website,omitempty"`
}

// Account is a user account held at a registrar. A portfolio may spread
// domains across several accounts at the same registrar.
type Account struct {
	ID          uuid.UUID `json:"id"`
	RegistrarID uuid.UUID `json:"registrar_id"`
	Label       string    `json:"label"`
	Username    string    `json:"username,omitempty"`
}
