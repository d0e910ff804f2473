package student

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/colegio-app/colegio/core"
)

type Student struct {
	ID           int       `json:"id" db:"id"`
	Nombre       string    `json:"nombre" db:"nombre"`
	Apellido     string    `json:"apellido" db:"apellido"`
	Curso        string    `json:"curso" db:"curso"`
	Correo       string    `json:"correo" db:"correo"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

// NewStudent contains information needed to create a new Student.
// Field bounds mirror the estudiante table columns.
type NewStudent struct {
	Nombre   string `json:"nombre" form:"nombre" validate:"required,max=100"`
	Apellido string `json:"apellido" form:"apellido" validate:"required,max=100"`
	Curso    string `json:"curso" form:"curso" validate:"required,max=50"`
	Correo   string `json:"correo" form:"correo" validate:"required,max=100"`
	Password string `json:"password" form:"password" validate:"required,max=100"`
}

func (ns *NewStudent) Validate(ctx context.Context, svc *Service) error {
	ns.Nombre = core.CleanString(ns.Nombre)
	ns.Apellido = core.CleanString(ns.Apellido)
	ns.Curso = core.CleanString(ns.Curso)
	ns.Correo = core.CleanString(ns.Correo, true /* lower */)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckCorreoUniqueness(ctx, ns.Correo)
}

// UpdateStudent defines what information must be provided to modify an
// existing Student. The rules are the same as NewStudent's so that create
// and update can never drift apart.
type UpdateStudent struct {
	Nombre   string `json:"nombre" form:"nombre" validate:"required,max=100"`
	Apellido string `json:"apellido" form:"apellido" validate:"required,max=100"`
	Curso    string `json:"curso" form:"curso" validate:"required,max=50"`
	Correo   string `json:"correo" form:"correo" validate:"required,max=100"`
	Password string `json:"password" form:"password" validate:"required,max=100"`
}

func (us *UpdateStudent) Validate(ctx context.Context, origStd Student, svc *Service) error {
	us.Nombre = core.CleanString(us.Nombre)
	us.Apellido = core.CleanString(us.Apellido)
	us.Curso = core.CleanString(us.Curso)
	us.Correo = core.CleanString(us.Correo, true /* lower */)

	if err := core.Validate.Struct(us); err != nil {
		return err
	}
	return svc.CheckCorreoUniqueness(ctx, us.Correo, origStd)
}
