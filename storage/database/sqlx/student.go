package sqlxrepos

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/colegio-app/colegio/core/student"
)

// psql builds queries with Postgres-style placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var studentColumns = []string{"id", "nombre", "apellido", "curso", "correo", "password_hash", "created_at", "updated_at"}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CheckCorreoUniqueness(ctx context.Context, correo string, excludedStudents ...student.Student) error {
	b := psql.Select("COUNT(*)").From("estudiante").Where(sq.Eq{"correo": correo})
	if len(excludedStudents) > 0 {
		ids := make([]int, 0, len(excludedStudents))
		for _, std := range excludedStudents {
			ids = append(ids, std.ID)
		}
		b = b.Where(sq.NotEq{"id": ids})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building uniqueness query")
	}

	var count int
	if err = repo.db.GetContext(ctx, &count, query, args...); err != nil {
		return errors.Wrap(err, "checking correo uniqueness")
	}
	if count > 0 {
		return student.ErrCorreoExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	query, args, err := psql.Insert("estudiante").
		Columns("nombre", "apellido", "curso", "correo", "password_hash", "created_at", "updated_at").
		Values(std.Nombre, std.Apellido, std.Curso, std.Correo, std.PasswordHash, std.CreatedAt, std.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building insert query")
	}

	if err = repo.db.QueryRowxContext(ctx, query, args...).Scan(&std.ID); err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return std, nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	query, args, err := psql.Select(studentColumns...).From("estudiante").OrderBy("id").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select query")
	}

	students := make([]student.Student, 0)
	if err = repo.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	return repo.getStudent(ctx, sq.Eq{"id": id})
}

func (repo studentRepository) GetStudentByCorreo(ctx context.Context, correo string) (student.Student, error) {
	return repo.getStudent(ctx, sq.Eq{"correo": correo})
}

func (repo studentRepository) getStudent(ctx context.Context, pred interface{}) (student.Student, error) {
	query, args, err := psql.Select(studentColumns...).From("estudiante").Where(pred).ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building select query")
	}

	var std student.Student
	if err = repo.db.GetContext(ctx, &std, query, args...); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "getting student")
	}
	return std, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	// single statement; the store's own atomicity is the rollback guarantee
	query, args, err := psql.Update("estudiante").
		Set("nombre", std.Nombre).
		Set("apellido", std.Apellido).
		Set("curso", std.Curso).
		Set("correo", std.Correo).
		Set("password_hash", std.PasswordHash).
		Set("updated_at", std.UpdatedAt).
		Where(sq.Eq{"id": std.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building update query")
	}

	if err = repo.db.QueryRowxContext(ctx, query, args...).Scan(&std.CreatedAt); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "updating student")
	}
	return std, nil
}

func (repo studentRepository) DeleteStudent(ctx context.Context, id int) error {
	// payments cascade via the pago FK
	query, args, err := psql.Delete("estudiante").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.ErrNotFound
	}
	return nil
}
