package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"gitlab.com/dirk.krummacker/contacts-app/internal/errs"
	"gitlab.com/dirk.krummacker/contacts-app/internal/model"
	"gitlab.com/dirk.krummacker/contacts-app/internal/store"
	pkgmodel "gitlab.com/dirk.krummacker/contacts-app/pkg/model"
)

// Service validates requests on contacts and executes them against the store. Every error it
// returns is an application error from package errs.
type Service struct {
	store    store.Store
	logger   *slog.Logger
	validate *validator.Validate
}

// New creates the contacts service on top of the given store. A nil logger means slog.Default().
func New(s store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    s,
		logger:   logger,
		validate: newValidator(),
	}
}

// List returns all contacts in the order of the store.
func (s *Service) List(ctx context.Context) ([]model.Contact, error) {
	contacts, err := s.store.List(ctx)
	if err != nil {
		return nil, errs.Storage(err)
	}
	s.logger.DebugContext(ctx, "listed contacts", "count", len(contacts))
	return contacts, nil
}

// Create decodes and validates a new contact from the request body and persists it. The returned
// contact carries the id assigned by the store.
func (s *Service) Create(ctx context.Context, body []byte) (model.Contact, error) {
	payload, err := decodeObject[pkgmodel.NewContact](body)
	if err != nil {
		return model.Contact{}, err
	}
	if err := s.validateNewContact(payload); err != nil {
		return model.Contact{}, err
	}
	c, err := s.store.Insert(ctx, payload.Name, payload.Email, payload.Phone)
	if err != nil {
		return model.Contact{}, errs.Storage(err)
	}
	s.logger.InfoContext(ctx, "created contact", "id", c.Id, "name", c.Name)
	return c, nil
}

// Find returns the contact with the given id.
func (s *Service) Find(ctx context.Context, id int64) (model.Contact, error) {
	return s.resolve(ctx, id)
}

// Update merges the fields present in the request body into the stored contact and returns the
// result. The contact is resolved before the body is looked at. An empty object saves the
// contact unchanged.
func (s *Service) Update(ctx context.Context, id int64, body []byte) (model.Contact, error) {
	c, err := s.resolve(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}
	update, err := decodeObject[pkgmodel.ContactUpdate](body)
	if err != nil {
		return model.Contact{}, err
	}
	merge(&c, update)
	if err := s.store.Save(ctx, c); err != nil {
		return model.Contact{}, errs.Storage(err)
	}
	s.logger.InfoContext(ctx, "updated contact", "id", c.Id)
	return c, nil
}

// Delete removes the contact with the given id permanently and returns what was deleted.
func (s *Service) Delete(ctx context.Context, id int64) (model.Contact, error) {
	c, err := s.resolve(ctx, id)
	if err != nil {
		return model.Contact{}, err
	}
	if err := s.store.Delete(ctx, c); err != nil {
		return model.Contact{}, errs.Storage(err)
	}
	s.logger.InfoContext(ctx, "deleted contact", "id", c.Id, "name", c.Name)
	return c, nil
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return errs.Storage(err)
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, id int64) (model.Contact, error) {
	c, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Contact{}, errs.NotFound(id)
	}
	if err != nil {
		return model.Contact{}, errs.Storage(err)
	}
	return c, nil
}
