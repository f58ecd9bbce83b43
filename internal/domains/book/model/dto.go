package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateBookRequest struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	CoverImage    string   `json:"coverImage"`
	Genre         []string `json:"genre"`
	PublishedYear int      `json:"publishedYear"`
	Publisher     string   `json:"publisher"`
	ISBN          string   `json:"isbn"`
	Featured      bool     `json:"featured"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("A book must have a title")),
		validation.Field(&r.Author, validation.Required.Error("A book must have an author")),
		validation.Field(&r.Description, validation.Required.Error("A book must have a description")),
		validation.Field(&r.Genre, validation.Required.Error("A book must have at least one genre"), validation.Length(1, 0)),
		validation.Field(&r.PublishedYear, validation.Min(0)),
	)
}

type UpdateBookRequest struct {
	Title         *string   `json:"title"`
	Author        *string   `json:"author"`
	Description   *string   `json:"description"`
	CoverImage    *string   `json:"coverImage"`
	Genre         *[]string `json:"genre"`
	PublishedYear *int      `json:"publishedYear"`
	Publisher     *string   `json:"publisher"`
	ISBN          *string   `json:"isbn"`
	Featured      *bool     `json:"featured"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != nil, validation.Required.Error("title cannot be empty"))),
		validation.Field(&r.Author, validation.When(r.Author != nil, validation.Required.Error("author cannot be empty"))),
		validation.Field(&r.Genre, validation.When(r.Genre != nil, validation.Length(1, 0).Error("genre cannot be empty"))),
	)
}
