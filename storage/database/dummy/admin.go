package dummydb

import (
	"context"

	"github.com/colegio-app/colegio/core/admin"
)

type adminRepository struct {
	db *adminTable
}

var _ admin.Repository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db *DB) *adminRepository {
	return &adminRepository{db: db.admin}
}

func (repo *adminRepository) GetAdminByID(ctx context.Context, id int) (admin.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if adm, ok := repo.db.table[id]; ok {
		return *adm, nil
	}
	return admin.Admin{}, admin.ErrNotFound
}

func (repo *adminRepository) GetAdminByCorreo(ctx context.Context, correo string) (admin.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, adm := range repo.db.table {
		if adm.Correo == correo {
			return *adm, nil
		}
	}
	return admin.Admin{}, admin.ErrNotFound
}

func (repo *adminRepository) UpdateOrCreateAdmin(ctx context.Context, adm admin.Admin) (admin.Admin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.Correo == adm.Correo {
			adm.ID = existing.ID
			repo.db.table[adm.ID] = &adm
			return adm, nil
		}
	}

	repo.db.pkCount++
	adm.ID = repo.db.pkCount
	repo.db.table[adm.ID] = &adm
	return adm, nil
}
