package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/dirk.krummacker/contacts-app/internal/model"
)

// SQLStore keeps contacts in a relational database, accessed through sqlx. All statements are
// prepared once when the store is created.
type SQLStore struct {
	db       *sqlx.DB
	postgres bool

	// insert creates a contact. On postgres it returns the new id, on mysql the id is taken from
	// the result.
	insert *sqlx.NamedStmt

	// update overwrites name, email and phone of the contact with the given id.
	update *sqlx.NamedStmt

	// selectAll selects all contacts ordered by id.
	selectAll *sqlx.Stmt

	// selectWhereId selects the contact with a given id.
	selectWhereId *sqlx.Stmt

	// deleteWhereId deletes the contact with a given id.
	deleteWhereId *sqlx.Stmt
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps the sql database with sqlx and prepares all statements. The database argument
// can be a real database for production use or a mock database within unit tests. The driver name
// decides the placeholder syntax and must be "mysql" or "postgres".
func NewSQLStore(ctx context.Context, sqlDB *sql.DB, driverName string) (*SQLStore, error) {
	s := &SQLStore{
		db:       sqlx.NewDb(sqlDB, driverName),
		postgres: driverName == "postgres",
	}

	insertSQL := `
		INSERT INTO contacts (name, email, phone)
		VALUES (:name, :email, :phone)`
	if s.postgres {
		insertSQL += ` RETURNING id`
	}

	var err error
	if s.insert, err = s.db.PrepareNamedContext(ctx, insertSQL); err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	if s.update, err = s.db.PrepareNamedContext(ctx, `
		UPDATE contacts SET name = :name, email = :email, phone = :phone
		WHERE id = :id`); err != nil {
		return nil, fmt.Errorf("prepare update: %w", err)
	}
	if s.selectAll, err = s.db.PreparexContext(ctx, `
		SELECT id, name, email, phone FROM contacts ORDER BY id`); err != nil {
		return nil, fmt.Errorf("prepare select: %w", err)
	}
	if s.selectWhereId, err = s.db.PreparexContext(ctx, s.db.Rebind(`
		SELECT id, name, email, phone FROM contacts WHERE id = ?`)); err != nil {
		return nil, fmt.Errorf("prepare select by id: %w", err)
	}
	if s.deleteWhereId, err = s.db.PreparexContext(ctx, s.db.Rebind(`
		DELETE FROM contacts WHERE id = ?`)); err != nil {
		return nil, fmt.Errorf("prepare delete: %w", err)
	}
	return s, nil
}

func (s *SQLStore) List(ctx context.Context) ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := s.selectAll.SelectContext(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (model.Contact, error) {
	var c model.Contact
	err := s.selectWhereId.GetContext(ctx, &c, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, ErrNotFound
	}
	return c, err
}

func (s *SQLStore) Insert(ctx context.Context, name, email, phone string) (model.Contact, error) {
	c := model.Contact{Name: name, Email: email, Phone: phone}
	if s.postgres {
		if err := s.insert.QueryRowxContext(ctx, &c).Scan(&c.Id); err != nil {
			return model.Contact{}, err
		}
		return c, nil
	}
	result, err := s.insert.ExecContext(ctx, &c)
	if err != nil {
		return model.Contact{}, err
	}
	if c.Id, err = result.LastInsertId(); err != nil {
		return model.Contact{}, err
	}
	return c, nil
}

// Save does not look at the number of affected rows: mysql reports zero when the values did not
// change.
func (s *SQLStore) Save(ctx context.Context, c model.Contact) error {
	_, err := s.update.ExecContext(ctx, &c)
	return err
}

func (s *SQLStore) Delete(ctx context.Context, c model.Contact) error {
	_, err := s.deleteWhereId.ExecContext(ctx, c.Id)
	return err
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the prepared statements and the database handle.
func (s *SQLStore) Close() error {
	return errors.Join(
		s.insert.Close(),
		s.update.Close(),
		s.selectAll.Close(),
		s.selectWhereId.Close(),
		s.deleteWhereId.Close(),
		s.db.Close(),
	)
}
