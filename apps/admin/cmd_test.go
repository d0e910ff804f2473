package main

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/colegio-app/colegio/core/admin"
	dummydb "github.com/colegio-app/colegio/storage/database/dummy"
)

func setupCLI(t *testing.T, pwd string) *commandLine {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setupCLI() failed: %v", err)
	}

	origReadPassword := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = origReadPassword })

	return &commandLine{admRepo: dummydb.NewAdminRepository(db)}
}

func Test_commandLine_usage(t *testing.T) {
	cli := setupCLI(t, "s3cret")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: []string{"admin"}},
		{name: "unknown command", args: []string{"admin", "frobnicate"}},
		{name: "addadmin without correo", args: []string{"admin", "addadmin", "-nombre", "Carlos"}},
		{name: "resetpassword without correo", args: []string{"admin", "resetpassword"}},
		{name: "migrate without command", args: []string{"admin", "migrate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(tt.args); err != errHelp {
				t.Errorf("run() error = %v; want errHelp", err)
			}
		})
	}
}

func Test_commandLine_addAdmin(t *testing.T) {
	ctx := context.Background()
	cli := setupCLI(t, "s3cret")

	args := []string{"admin", "addadmin", "-nombre", "Carlos ", "-apellido", "Lopez", "-correo", " Carlos@Colegio.EDU "}
	if err := cli.run(args); err != nil {
		t.Fatalf("run(addadmin) failed: %v", err)
	}

	adm, err := cli.admRepo.GetAdminByCorreo(ctx, "carlos@colegio.edu")
	if err != nil {
		t.Fatalf("GetAdminByCorreo() failed: %v", err)
	}
	if adm.Nombre != "Carlos" {
		t.Errorf("nombre = %q; want Carlos", adm.Nombre)
	}
	if err = adm.CheckPassword("s3cret"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}

	// same correo again updates in place instead of duplicating
	args = []string{"admin", "addadmin", "-nombre", "Juan", "-apellido", "Lopez", "-correo", "carlos@colegio.edu"}
	if err = cli.run(args); err != nil {
		t.Fatalf("run(addadmin) again failed: %v", err)
	}
	updated, err := cli.admRepo.GetAdminByCorreo(ctx, "carlos@colegio.edu")
	if err != nil {
		t.Fatalf("GetAdminByCorreo() failed: %v", err)
	}
	if updated.ID != adm.ID {
		t.Errorf("addadmin created a second account: id %d != %d", updated.ID, adm.ID)
	}
	if updated.Nombre != "Juan" {
		t.Errorf("nombre = %q; want Juan", updated.Nombre)
	}
}

func Test_commandLine_addAdmin_emptyPassword(t *testing.T) {
	cli := setupCLI(t, "")

	args := []string{"admin", "addadmin", "-nombre", "Carlos", "-apellido", "Lopez", "-correo", "carlos@colegio.edu"}
	if err := cli.run(args); err != errHelp {
		t.Errorf("run(addadmin) with empty password error = %v; want errHelp", err)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	ctx := context.Background()
	cli := setupCLI(t, "s3cret")

	adm := admin.Admin{Nombre: "Carlos", Apellido: "Lopez", Correo: "carlos@colegio.edu"}
	if err := adm.SetPassword("old-pwd"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if _, err := cli.admRepo.UpdateOrCreateAdmin(ctx, adm); err != nil {
		t.Fatalf("UpdateOrCreateAdmin() failed: %v", err)
	}

	if err := cli.run([]string{"admin", "resetpassword", "-correo", "carlos@colegio.edu"}); err != nil {
		t.Fatalf("run(resetpassword) failed: %v", err)
	}
	updated, err := cli.admRepo.GetAdminByCorreo(ctx, "carlos@colegio.edu")
	if err != nil {
		t.Fatalf("GetAdminByCorreo() failed: %v", err)
	}
	if err = updated.CheckPassword("s3cret"); err != nil {
		t.Errorf("CheckPassword() with new password failed: %v", err)
	}
	if err = updated.CheckPassword("old-pwd"); err == nil {
		t.Error("CheckPassword() still accepts the old password")
	}

	if err = cli.run([]string{"admin", "resetpassword", "-correo", "nadie@colegio.edu"}); err != admin.ErrNotFound {
		t.Errorf("run(resetpassword) unknown correo error = %v; want ErrNotFound", err)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setupCLI(t, "s3cret")

	var gotCommand string
	var gotArgs []string
	origMigrateRun := migrateRunFunc
	migrateRunFunc = func(command string, db *sqlx.DB, args ...string) error {
		gotCommand = command
		gotArgs = args
		return nil
	}
	t.Cleanup(func() { migrateRunFunc = origMigrateRun })

	if err := cli.run([]string{"admin", "migrate", "up-to", "2"}); err != nil {
		t.Fatalf("run(migrate) failed: %v", err)
	}
	if gotCommand != "up-to" {
		t.Errorf("migrate command = %q; want up-to", gotCommand)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "2" {
		t.Errorf("migrate args = %v; want [2]", gotArgs)
	}
}
