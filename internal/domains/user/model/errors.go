package model

import "bookreview-backend/internal/shared/apperror"

var (
	ErrUserNotFound = apperror.NewNotFound("No user found with that ID")
	ErrEmailTaken   = apperror.NewDuplicate("A user with this email already exists")
	ErrBadLogin     = apperror.NewUnauthorized("Incorrect email or password")
	ErrNotAllowed   = apperror.NewForbidden("You do not have permission to modify this profile")
)
