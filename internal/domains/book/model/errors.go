package model

import "bookreview-backend/internal/shared/apperror"

var (
	ErrBookNotFound = apperror.NewNotFound("No book found with that ID")
	ErrISBNTaken    = apperror.NewDuplicate("A book with this ISBN already exists")
	ErrAdminOnly    = apperror.NewForbidden("You do not have permission to manage the catalog")
)
