package admin

import (
	"golang.org/x/crypto/bcrypt"
)

// Admin is an administrator account. Accounts are seeded by operators
// (see apps/admin); the web application only ever reads them.
type Admin struct {
	ID           int    `json:"id" db:"id"`
	Nombre       string `json:"nombre" db:"nombre"`
	Apellido     string `json:"apellido" db:"apellido"`
	Correo       string `json:"correo" db:"correo"`
	PasswordHash []byte `json:"-" db:"password_hash"`
}

func (a *Admin) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Admin) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}
