package model

// Contact is the representation of a contact as returned by the contacts API.
type Contact struct {
	Id    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewContact is the request body for creating a contact. All fields are required and must not be
// empty. The order of the fields is the order in which they are validated.
type NewContact struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// ContactUpdate is the request body for updating a contact. Fields that are nil keep their
// stored value.
type ContactUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
