package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/colegio-app/colegio/core/payment"
)

type paymentRepository struct {
	db   *paymentTable
	stds *studentTable
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(db *DB) *paymentRepository {
	return &paymentRepository{db: db.payment, stds: db.student}
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment) (payment.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	pmt.ID = repo.db.pkCount
	repo.db.table[pmt.ID] = &pmt
	return pmt, nil
}

func (repo *paymentRepository) QueryAllPayments(ctx context.Context) ([]payment.StudentPayment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	repo.stds.RLock()
	defer repo.stds.RUnlock()

	pmts := make([]payment.StudentPayment, 0, len(repo.db.table))
	for _, pmt := range repo.db.table {
		std, ok := repo.stds.table[pmt.EstudianteID]
		if !ok {
			continue // unreachable with the cascade in place
		}
		pmts = append(pmts, payment.StudentPayment{Payment: *pmt, Student: *std})
	}
	sort.Slice(pmts, func(i, j int) bool { return pmts[i].Payment.ID < pmts[j].Payment.ID })
	return pmts, nil
}

func (repo *paymentRepository) GetPaymentByID(ctx context.Context, id int) (payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if pmt, ok := repo.db.table[id]; ok {
		return *pmt, nil
	}
	return payment.Payment{}, payment.ErrNotFound
}

func (repo *paymentRepository) ConfirmPayment(ctx context.Context, id int, confirmedAt time.Time) (payment.Payment, error) {
	// the table lock is held across the check and the write so that two
	// racing confirmations cannot both pass the Pendiente check.
	repo.db.Lock()
	defer repo.db.Unlock()

	pmt, ok := repo.db.table[id]
	if !ok {
		return payment.Payment{}, payment.ErrNotFound
	}
	if pmt.Estado != payment.StatusPending {
		return payment.Payment{}, payment.ErrNotPending
	}
	pmt.Estado = payment.StatusPaid
	pmt.FechaConfirmacion = null.TimeFrom(confirmedAt)
	return *pmt, nil
}
