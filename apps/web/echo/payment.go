package echoweb

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/payment"
	"github.com/colegio-app/colegio/core/student"
)

type paymentApi struct {
	svc        *payment.Service
	studentSvc *student.Service
	logger     core.Logger
}

func registerPaymentAPI(g *echo.Group, opts *Options) {
	api := paymentApi{svc: opts.PaymentSvc, studentSvc: opts.StudentSvc, logger: opts.Logger}

	g.GET("/payment", api.list)
	g.GET("/payment/assign", api.assignForm)
	g.POST("/payment/assign", api.assign)
	g.POST("/payment/confirm/:id", api.confirm)
}

// Handlers

func (api *paymentApi) list(ctx echo.Context) error {
	pmts, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	students, err := api.studentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"pagos":       pmts,
		"estudiantes": students,
		"flash":       popFlash(ctx),
	})
}

func (api *paymentApi) assignForm(ctx echo.Context) error {
	students, err := api.studentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"estudiantes": students, "flash": popFlash(ctx)})
}

func (api *paymentApi) assign(ctx echo.Context) error {
	var data payment.AssignPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignPayment")
	}
	if err := data.Validate(ctx.Request().Context(), api.svc); err != nil {
		return flashRedirect(ctx, "/payment", "danger", assignFailureNotice(err))
	}

	pmt, err := api.svc.Assign(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "assigning payment")
	}

	api.logger.Info("payment assigned", map[string]interface{}{"id": pmt.ID, "estudiante_id": pmt.EstudianteID})
	return flashRedirect(ctx, "/payment", "success", "Pago asignado correctamente")
}

// assignFailureNotice maps an assignment validation failure to the
// user-visible notice.
func assignFailureNotice(err error) string {
	switch vErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		for _, fErr := range vErr {
			if fErr.Field() == "estudiante_id" {
				return "Estudiante no válido"
			}
		}
		return "Monto no válido"
	case *core.ValidationError:
		for _, fErr := range vErr.Fields {
			if fErr.Field == "estudiante_id" {
				return "Estudiante no válido"
			}
		}
	}
	return "Datos de pago no válidos"
}

func (api *paymentApi) confirm(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	pmt, err := api.svc.Confirm(ctx.Request().Context(), id)
	if err != nil {
		switch errors.Cause(err) {
		case payment.ErrNotFound:
			return err
		case payment.ErrNotPending:
			api.logger.Warn("confirm rejected", map[string]interface{}{"id": id})
			return flashRedirect(ctx, "/payment", "danger", "El pago no está en estado Pendiente")
		}
		return errors.Wrap(err, "confirming payment")
	}

	api.logger.Info("payment confirmed", map[string]interface{}{"id": pmt.ID})
	return flashRedirect(ctx, "/payment", "success", "Pago confirmado correctamente")
}
