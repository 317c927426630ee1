package service

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"gitlab.com/dirk.krummacker/contacts-app/internal/errs"
	"gitlab.com/dirk.krummacker/contacts-app/internal/model"
	pkgmodel "gitlab.com/dirk.krummacker/contacts-app/pkg/model"
)

var (
	errNotAnObject = errors.New("request body is not a JSON object")
	errInvalidUTF8 = errors.New("request body is not valid UTF-8")
)

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// decodeObject decodes a request body that must hold a JSON object. Empty bodies, invalid UTF-8,
// invalid JSON, null and any other JSON value are rejected as malformed. Fields of the wrong JSON
// type are malformed too, even when the value would be falsy.
func decodeObject[T any](body []byte) (*T, error) {
	if !utf8.Valid(body) {
		return nil, errs.Malformed(errInvalidUTF8)
	}
	var payload *T
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.Malformed(err)
	}
	if payload == nil {
		return nil, errs.Malformed(errNotAnObject)
	}
	return payload, nil
}

// validateNewContact reports the first required field that is missing or empty. Fields are
// checked in declaration order: name, email, phone.
func (s *Service) validateNewContact(payload *pkgmodel.NewContact) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return errs.Missing(fieldErrors[0].Field())
	}
	return err
}

// merge applies the fields present in the update to the contact.
func merge(c *model.Contact, update *pkgmodel.ContactUpdate) {
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	if update.Phone != nil {
		c.Phone = *update.Phone
	}
}
