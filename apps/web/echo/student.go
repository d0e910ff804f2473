package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/student"
)

type studentApi struct {
	svc    *student.Service
	logger core.Logger
}

func registerStudentAPI(g *echo.Group, opts *Options) {
	api := studentApi{svc: opts.StudentSvc, logger: opts.Logger}

	g.GET("/estudiantes", api.list)
	g.GET("/estudiantes/create", api.createForm)
	g.POST("/estudiantes/insert", api.insert)
	g.GET("/estudiantes/edit/:id", api.editForm)
	g.POST("/estudiantes/update/:id", api.update)
	g.POST("/estudiantes/delete/:id", api.delete)
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, errHTTPNotFound
	}
	return id, nil
}

// Handlers

func (api *studentApi) list(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"estudiantes": students, "flash": popFlash(ctx)})
}

func (api *studentApi) createForm(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"flash": popFlash(ctx)})
}

func (api *studentApi) insert(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(ctx.Request().Context(), api.svc); err != nil {
		return err
	}

	std, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}

	api.logger.Info("student created", map[string]interface{}{"id": std.ID})
	return flashRedirect(ctx, "/estudiantes", "success", "Estudiante creado exitosamente")
}

func (api *studentApi) editForm(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	std, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"estudiante": std, "flash": popFlash(ctx)})
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	origStd, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}

	var data student.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err = data.Validate(ctx.Request().Context(), origStd, api.svc); err != nil {
		return err
	}

	if _, err = api.svc.Update(ctx.Request().Context(), id, data); err != nil {
		return errors.Wrap(err, "updating student")
	}

	api.logger.Info("student updated", map[string]interface{}{"id": id})
	return flashRedirect(ctx, "/estudiantes", "success", "Estudiante actualizado exitosamente")
}

func (api *studentApi) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return err
		}
		api.logger.Error("deleting student failed", err)
		return flashRedirect(ctx, "/estudiantes", "danger", "Error al eliminar estudiante")
	}

	api.logger.Info("student deleted", map[string]interface{}{"id": id})
	return flashRedirect(ctx, "/estudiantes", "success", "Estudiante eliminado exitosamente")
}
