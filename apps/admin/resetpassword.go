package main

import (
	"context"

	"github.com/colegio-app/colegio/core"
)

// resetPassword replaces an existing administrator's password.
func (cli *commandLine) resetPassword(correo, pwd string) error {
	ctx := context.Background()

	adm, err := cli.admRepo.GetAdminByCorreo(ctx, core.CleanString(correo, true /* lower */))
	if err != nil {
		return err
	}
	if err := adm.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.admRepo.UpdateOrCreateAdmin(ctx, adm); err != nil {
		return err
	}
	return nil
}
