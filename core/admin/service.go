package admin

import (
	"context"
	"errors"

	"github.com/colegio-app/colegio/core"
)

var (
	// errors
	ErrNotFound = errors.New("administrator not found")
	// ErrAuthenticationFailed is returned on unknown email or wrong password
	// alike; callers must not learn which part failed.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

type (
	Repository interface {
		GetAdminByID(ctx context.Context, id int) (Admin, error)
		GetAdminByCorreo(ctx context.Context, correo string) (Admin, error)
		// UpdateOrCreateAdmin matches on Correo. Used by the operator CLI only.
		UpdateOrCreateAdmin(ctx context.Context, adm Admin) (Admin, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByID(ctx context.Context, id int) (Admin, error) {
	return svc.repo.GetAdminByID(ctx, id)
}

func (svc *Service) GetByCorreo(ctx context.Context, correo string) (Admin, error) {
	return svc.repo.GetAdminByCorreo(ctx, core.CleanString(correo, true /* lower */))
}

// Authenticate checks an administrator's credentials.
func (svc *Service) Authenticate(ctx context.Context, correo, pwd string) (Admin, error) {
	adm, err := svc.GetByCorreo(ctx, correo)
	if err != nil {
		if err == ErrNotFound {
			return Admin{}, ErrAuthenticationFailed
		}
		return Admin{}, err
	}
	if err = adm.CheckPassword(pwd); err != nil {
		return Admin{}, ErrAuthenticationFailed
	}
	return adm, nil
}
