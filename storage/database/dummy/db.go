package dummydb

import (
	"sync"

	"github.com/colegio-app/colegio/core/admin"
	"github.com/colegio-app/colegio/core/payment"
	"github.com/colegio-app/colegio/core/student"
)

type (
	DB struct {
		admin   *adminTable
		student *studentTable
		payment *paymentTable
	}

	adminTable struct {
		sync.RWMutex
		table   map[int]*admin.Admin
		pkCount int
	}

	studentTable struct {
		sync.RWMutex
		table   map[int]*student.Student
		pkCount int
	}

	paymentTable struct {
		sync.RWMutex
		table   map[int]*payment.Payment
		pkCount int
	}
)

func Open() (*DB, error) {
	db := &DB{
		admin:   &adminTable{table: make(map[int]*admin.Admin)},
		student: &studentTable{table: make(map[int]*student.Student)},
		payment: &paymentTable{table: make(map[int]*payment.Payment)},
	}
	return db, nil
}
