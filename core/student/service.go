package student

import (
	"context"
	"errors"
	"time"

	"github.com/colegio-app/colegio/core"
)

var (
	// errors
	ErrNotFound     = errors.New("student not found")
	ErrCorreoExists = errors.New("a student with this email already exists")
)

type (
	Repository interface {
		CheckCorreoUniqueness(ctx context.Context, correo string, excludedStudents ...Student) error
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		GetStudentByCorreo(ctx context.Context, correo string) (Student, error)
		// UpdateStudent persists the whole row atomically; on failure the
		// stored row is left untouched.
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		// DeleteStudent removes the student and, by the pago table's
		// ON DELETE CASCADE, all of their payments.
		DeleteStudent(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckCorreoUniqueness(ctx context.Context, correo string, exclStudents ...Student) error {
	if err := svc.repo.CheckCorreoUniqueness(ctx, correo, exclStudents...); err != nil {
		if err == ErrCorreoExists {
			return core.NewValidationError(err, core.FieldError{Field: "correo", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		Nombre:    ns.Nombre,
		Apellido:  ns.Apellido,
		Curso:     ns.Curso,
		Correo:    ns.Correo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := std.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByCorreo(ctx context.Context, correo string) (Student, error) {
	return svc.repo.GetStudentByCorreo(ctx, core.CleanString(correo, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	std := Student{
		ID:        id,
		Nombre:    us.Nombre,
		Apellido:  us.Apellido,
		Curso:     us.Curso,
		Correo:    us.Correo,
		UpdatedAt: time.Now().UTC(),
	}
	if err := std.SetPassword(us.Password); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteStudent(ctx, id)
}
