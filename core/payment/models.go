package payment

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/student"
)

// Payment lifecycle states. A payment is created Pendiente and can only
// ever move to Pagado; there is no other transition.
const (
	StatusPending = "Pendiente"
	StatusPaid    = "Pagado"
)

// MaxMonto is the highest amount a pago row can hold (NUMERIC(10,2)).
const MaxMonto = 99999999.99

type Payment struct {
	ID                int         `json:"id" db:"id"`
	EstudianteID      int         `json:"estudiante_id" db:"estudiante_id"`
	Monto             float64     `json:"monto" db:"monto"`
	FechaAsignacion   time.Time   `json:"fecha_asignacion" db:"fecha_asignacion"` // UTC
	FechaConfirmacion null.Time   `json:"fecha_confirmacion" db:"fecha_confirmacion"`
	Estado            string      `json:"estado" db:"estado"`
	Observacion       null.String `json:"observacion" db:"observacion"`
}

func (p Payment) IsPending() bool {
	return p.Estado == StatusPending
}

// StudentPayment is a payment joined with its owning student.
type StudentPayment struct {
	Payment Payment         `json:"pago"`
	Student student.Student `json:"estudiante"`
}

// AssignPayment contains information needed to assign a pending payment
// to a student.
type AssignPayment struct {
	EstudianteID int     `json:"estudiante_id" form:"estudiante_id" validate:"required"`
	Monto        float64 `json:"monto" form:"monto" validate:"required,gt=0,lte=99999999.99"`
	Observacion  string  `json:"observacion" form:"observacion"`
}

func (ap *AssignPayment) Validate(ctx context.Context, svc *Service) error {
	ap.Observacion = core.CleanString(ap.Observacion)

	if err := core.Validate.Struct(ap); err != nil {
		return err
	}
	return svc.checkStudent(ctx, ap.EstudianteID)
}
