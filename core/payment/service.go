package payment

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/student"
)

var (
	// errors
	ErrNotFound = errors.New("payment not found")
	// ErrNotPending is returned when confirming a payment that already left
	// the Pendiente state.
	ErrNotPending = errors.New("payment is not in Pendiente state")
)

type (
	Repository interface {
		CreatePayment(ctx context.Context, pmt Payment) (Payment, error)
		// QueryAllPayments returns every payment joined with its owning student.
		QueryAllPayments(ctx context.Context) ([]StudentPayment, error)
		GetPaymentByID(ctx context.Context, id int) (Payment, error)
		// ConfirmPayment conditionally moves the payment to Pagado, stamping
		// confirmedAt, only while it is still Pendiente. The check and the
		// write must be a single atomic operation so that two concurrent
		// confirmations cannot both succeed.
		ConfirmPayment(ctx context.Context, id int, confirmedAt time.Time) (Payment, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
	}
)

func NewService(repo Repository, students *student.Service) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) checkStudent(ctx context.Context, id int) error {
	if _, err := svc.students.GetByID(ctx, id); err != nil {
		if err == student.ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "estudiante_id", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Assign creates a new Pendiente payment for a student.
func (svc *Service) Assign(ctx context.Context, ap AssignPayment) (Payment, error) {
	pmt := Payment{
		EstudianteID:    ap.EstudianteID,
		Monto:           ap.Monto,
		FechaAsignacion: time.Now().UTC(),
		Estado:          StatusPending,
		Observacion:     null.NewString(ap.Observacion, ap.Observacion != ""),
	}
	return svc.repo.CreatePayment(ctx, pmt)
}

func (svc *Service) QueryAll(ctx context.Context) ([]StudentPayment, error) {
	return svc.repo.QueryAllPayments(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Payment, error) {
	return svc.repo.GetPaymentByID(ctx, id)
}

// Confirm moves a Pendiente payment to Pagado. Confirming a payment that
// is not Pendiente fails with ErrNotPending; the second of two racing
// confirmations loses at the repository level.
func (svc *Service) Confirm(ctx context.Context, id int) (Payment, error) {
	return svc.repo.ConfirmPayment(ctx, id, time.Now().UTC())
}
