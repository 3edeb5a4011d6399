package registrar

import "github.com/google/uuid"

// DefaultSeed returns the built-in registrar reference data used when no
// external source is configured.
func DefaultSeed() ([]Registrar, []Account) {
	godaddy := Registrar{ID: uuid.New(), Name: "GoDaddy", Website: "https://www.godaddy.com"}
	namecheap := Registrar{ID: uuid.New(), Name: "Namecheap", Website: "https://www.namecheap.com"}
	cloudflare := Registrar{ID: uuid.New(), Name: "Cloudflare", Website: "https://www.cloudflare.com"}
	porkbun := Registrar{ID: uuid.New(), Name: "Porkbun", Website: "https://porkbun.com"}

	registrars := []Registrar{godaddy, namecheap, cloudflare, porkbun}
	accounts := []Account{
		{ID: uuid.New(), RegistrarID: godaddy.ID, Label: "Personal", Username: "owner"},
		{ID: uuid.New(), RegistrarID: godaddy.ID, Label: "Business", Username: "biz"},
		{ID: uuid.New(), RegistrarID: namecheap.ID, Label: "Main", Username: "owner"},
		{ID: uuid.New(), RegistrarID: cloudflare.ID, Label: "Main", Username: "owner"},
		{ID: uuid.New(), RegistrarID: porkbun.ID, Label: "Side projects", Username: "owner"},
	}
	return registrars, accounts
}
