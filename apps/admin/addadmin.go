package main

import (
	"context"

	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/admin"
)

// addAdmin updates or creates an admin.Admin account.
func (cli *commandLine) addAdmin(nombre, apellido, correo, pwd string) error {
	ctx := context.Background()
	correo = core.CleanString(correo, true /* lower */)

	adm, err := cli.admRepo.GetAdminByCorreo(ctx, correo)
	if err != nil {
		if err != admin.ErrNotFound {
			return err
		}
		adm = admin.Admin{Correo: correo}
	}
	adm.Nombre = core.CleanString(nombre)
	adm.Apellido = core.CleanString(apellido)
	if err := adm.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.admRepo.UpdateOrCreateAdmin(ctx, adm); err != nil {
		return err
	}
	return nil
}
