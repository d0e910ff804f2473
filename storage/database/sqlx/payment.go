package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/colegio-app/colegio/core/payment"
	"github.com/colegio-app/colegio/core/student"
)

var paymentColumns = []string{"id", "estudiante_id", "monto", "fecha_asignacion", "fecha_confirmacion", "estado", "observacion"}

// joinedColumns aliases pago and estudiante columns so sqlx can map the
// joined row onto the nested StudentPayment struct.
var joinedColumns = []string{
	`p.id AS "pago.id"`,
	`p.estudiante_id AS "pago.estudiante_id"`,
	`p.monto AS "pago.monto"`,
	`p.fecha_asignacion AS "pago.fecha_asignacion"`,
	`p.fecha_confirmacion AS "pago.fecha_confirmacion"`,
	`p.estado AS "pago.estado"`,
	`p.observacion AS "pago.observacion"`,
	`e.id AS "estudiante.id"`,
	`e.nombre AS "estudiante.nombre"`,
	`e.apellido AS "estudiante.apellido"`,
	`e.curso AS "estudiante.curso"`,
	`e.correo AS "estudiante.correo"`,
	`e.password_hash AS "estudiante.password_hash"`,
	`e.created_at AS "estudiante.created_at"`,
	`e.updated_at AS "estudiante.updated_at"`,
}

type pagoEstudianteRow struct {
	Pago       payment.Payment `db:"pago"`
	Estudiante student.Student `db:"estudiante"`
}

type paymentRepository struct {
	db *sqlx.DB
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(db *sqlx.DB) *paymentRepository {
	return &paymentRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to payment.ErrNotFound
func (repo paymentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return payment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo paymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment) (payment.Payment, error) {
	query, args, err := psql.Insert("pago").
		Columns("estudiante_id", "monto", "fecha_asignacion", "estado", "observacion").
		Values(pmt.EstudianteID, pmt.Monto, pmt.FechaAsignacion, pmt.Estado, pmt.Observacion).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "building insert query")
	}

	if err = repo.db.QueryRowxContext(ctx, query, args...).Scan(&pmt.ID); err != nil {
		return payment.Payment{}, errors.Wrap(err, "creating payment")
	}
	return pmt, nil
}

func (repo paymentRepository) QueryAllPayments(ctx context.Context) ([]payment.StudentPayment, error) {
	query, args, err := psql.Select(joinedColumns...).
		From("pago p").
		Join("estudiante e ON p.estudiante_id = e.id").
		OrderBy("p.id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select query")
	}

	rows := make([]pagoEstudianteRow, 0)
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}

	pmts := make([]payment.StudentPayment, 0, len(rows))
	for _, row := range rows {
		pmts = append(pmts, payment.StudentPayment{Payment: row.Pago, Student: row.Estudiante})
	}
	return pmts, nil
}

func (repo paymentRepository) GetPaymentByID(ctx context.Context, id int) (payment.Payment, error) {
	query, args, err := psql.Select(paymentColumns...).From("pago").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "building select query")
	}

	var pmt payment.Payment
	if err = repo.db.GetContext(ctx, &pmt, query, args...); err != nil {
		return payment.Payment{}, repo.trapNoRowsErr(err, "getting payment")
	}
	return pmt, nil
}

func (repo paymentRepository) ConfirmPayment(ctx context.Context, id int, confirmedAt time.Time) (payment.Payment, error) {
	// conditional update: only one of two racing confirmations can match
	// the Pendiente predicate.
	query, args, err := psql.Update("pago").
		Set("estado", payment.StatusPaid).
		Set("fecha_confirmacion", confirmedAt).
		Where(sq.Eq{"id": id, "estado": payment.StatusPending}).
		Suffix("RETURNING " + "id, estudiante_id, monto, fecha_asignacion, fecha_confirmacion, estado, observacion").
		ToSql()
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "building update query")
	}

	var pmt payment.Payment
	if err = repo.db.GetContext(ctx, &pmt, query, args...); err != nil {
		if err != sql.ErrNoRows {
			return payment.Payment{}, errors.Wrap(err, "confirming payment")
		}
		// no row matched: either the payment does not exist or it already
		// left Pendiente.
		if _, gErr := repo.GetPaymentByID(ctx, id); gErr != nil {
			return payment.Payment{}, gErr
		}
		return payment.Payment{}, payment.ErrNotPending
	}
	return pmt, nil
}
