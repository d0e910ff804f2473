package dummydb

import (
	"context"
	"sort"

	"github.com/colegio-app/colegio/core/student"
)

type studentRepository struct {
	db   *studentTable
	pmts *paymentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.student, pmts: db.payment}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, std := range repo.db.table {
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

func (repo *studentRepository) CheckCorreoUniqueness(ctx context.Context, correo string, excludedStudents ...student.Student) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.db.table {
		if std.Correo == correo && !isExcluded(*std, excludedStudents) {
			return student.ErrCorreoExists
		}
	}
	return nil
}

func isExcluded(std student.Student, excluded []student.Student) bool {
	for _, ex := range excluded {
		if ex.ID == std.ID {
			return true
		}
	}
	return false
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	std.ID = repo.db.pkCount
	repo.db.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByCorreo(ctx context.Context, correo string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.db.table {
		if std.Correo == correo {
			return *std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[std.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	std.CreatedAt = orig.CreatedAt
	repo.db.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.table, id)

	// mirror the pago FK's ON DELETE CASCADE
	repo.pmts.Lock()
	defer repo.pmts.Unlock()
	for pid, pmt := range repo.pmts.table {
		if pmt.EstudianteID == id {
			delete(repo.pmts.table, pid)
		}
	}
	return nil
}
