package model

import "bookreview-backend/internal/shared/apperror"

var (
	ErrReviewNotFound  = apperror.NewNotFound("No review found with that ID")
	ErrAlreadyReviewed = apperror.NewDuplicate("You have already reviewed this book")
	ErrNotOwner        = apperror.NewForbidden("You do not have permission to modify this review")
	ErrNotOwnerDelete  = apperror.NewForbidden("You do not have permission to delete this review")
)
