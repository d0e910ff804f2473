package sqlxrepos

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/colegio-app/colegio/core/admin"
)

var adminColumns = []string{"id", "nombre", "apellido", "correo", "password_hash"}

type adminRepository struct {
	db *sqlx.DB
}

var _ admin.Repository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db *sqlx.DB) *adminRepository {
	return &adminRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to admin.ErrNotFound
func (repo adminRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return admin.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo adminRepository) GetAdminByID(ctx context.Context, id int) (admin.Admin, error) {
	return repo.getAdmin(ctx, sq.Eq{"id": id})
}

func (repo adminRepository) GetAdminByCorreo(ctx context.Context, correo string) (admin.Admin, error) {
	return repo.getAdmin(ctx, sq.Eq{"correo": correo})
}

func (repo adminRepository) getAdmin(ctx context.Context, pred interface{}) (admin.Admin, error) {
	query, args, err := psql.Select(adminColumns...).From("administrador").Where(pred).ToSql()
	if err != nil {
		return admin.Admin{}, errors.Wrap(err, "building select query")
	}

	var adm admin.Admin
	if err = repo.db.GetContext(ctx, &adm, query, args...); err != nil {
		return admin.Admin{}, repo.trapNoRowsErr(err, "getting administrator")
	}
	return adm, nil
}

func (repo adminRepository) UpdateOrCreateAdmin(ctx context.Context, adm admin.Admin) (admin.Admin, error) {
	query, args, err := psql.Insert("administrador").
		Columns("nombre", "apellido", "correo", "password_hash").
		Values(adm.Nombre, adm.Apellido, adm.Correo, adm.PasswordHash).
		Suffix("ON CONFLICT (correo) DO UPDATE SET nombre = EXCLUDED.nombre, apellido = EXCLUDED.apellido, password_hash = EXCLUDED.password_hash").
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return admin.Admin{}, errors.Wrap(err, "building upsert query")
	}

	if err = repo.db.QueryRowxContext(ctx, query, args...).Scan(&adm.ID); err != nil {
		return admin.Admin{}, errors.Wrap(err, "upserting administrator")
	}
	return adm, nil
}
