package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateReviewRequest struct {
	Book        string `json:"book"`
	Rating      int    `json:"rating"`
	Review      string `json:"review"`
	FinalReview string `json:"finalReview"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Book, validation.Required.Error("Review must belong to a book")),
		validation.Field(&r.Rating,
			validation.Required.Error("A review must have a rating"),
			validation.Min(MinRating).Error("rating must be between 1 and 5"),
			validation.Max(MaxRating).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Review, validation.Required.Error("Review cannot be empty")),
	)
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Review      *string `json:"review"`
	FinalReview *string `json:"finalReview"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.When(r.Rating != nil,
			validation.Min(MinRating).Error("rating must be between 1 and 5"),
			validation.Max(MaxRating).Error("rating must be between 1 and 5"),
		)),
		validation.Field(&r.Review, validation.When(r.Review != nil,
			validation.Required.Error("Review cannot be empty"),
		)),
	)
}
