package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/repository"
	reviewmodel "bookreview-backend/internal/domains/review/model"
	reviewrepo "bookreview-backend/internal/domains/review/repository"
	"bookreview-backend/internal/shared/apperror"
	"bookreview-backend/internal/shared/authz"
	"bookreview-backend/internal/shared/query"
)

type bookService struct {
	bookRepo   repository.BookRepository
	reviewRepo reviewrepo.ReviewRepository
}

func NewBookService(
	bookRepo repository.BookRepository,
	reviewRepo reviewrepo.ReviewRepository,
) ServiceInterface {
	return &bookService{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *bookService) List(ctx context.Context, params map[string][]string) ([]model.Book, int64, error) {
	plan, err := query.Build(params, model.QuerySchema)
	if err != nil {
		return nil, 0, err
	}
	return s.bookRepo.List(ctx, plan)
}

func (s *bookService) Featured(ctx context.Context) ([]model.Book, error) {
	return s.bookRepo.Featured(ctx, model.FeaturedLimit)
}

func (s *bookService) GetByID(ctx context.Context, id string) (*model.Book, []reviewmodel.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, apperror.NewValidation("invalid book ID")
	}

	book, err := s.bookRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, nil, err
	}

	reviews, err := s.reviewRepo.ListByBook(ctx, oid)
	if err != nil {
		return nil, nil, err
	}

	return book, reviews, nil
}

func (s *bookService) Create(ctx context.Context, identity authz.Identity, req model.CreateBookRequest) (*model.Book, error) {
	if !authz.CanMutate(identity, "", authz.ActionCreate, authz.ResourceBook) {
		return nil, model.ErrAdminOnly
	}

	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	createdBy, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		return nil, apperror.NewValidation("invalid user ID")
	}

	coverImage := req.CoverImage
	if coverImage == "" {
		coverImage = model.DefaultCoverImage
	}

	book := &model.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		CoverImage:    coverImage,
		Genre:         req.Genre,
		PublishedYear: req.PublishedYear,
		Publisher:     req.Publisher,
		ISBN:          req.ISBN,
		Featured:      req.Featured,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) Update(ctx context.Context, identity authz.Identity, id string, req model.UpdateBookRequest) (*model.Book, error) {
	if !authz.CanMutate(identity, "", authz.ActionUpdate, authz.ResourceBook) {
		return nil, model.ErrAdminOnly
	}

	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewValidation("invalid book ID")
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CoverImage != nil {
		fields["coverImage"] = *req.CoverImage
	}
	if req.Genre != nil {
		fields["genre"] = *req.Genre
	}
	if req.PublishedYear != nil {
		fields["publishedYear"] = *req.PublishedYear
	}
	if req.Publisher != nil {
		fields["publisher"] = *req.Publisher
	}
	if req.ISBN != nil {
		fields["isbn"] = *req.ISBN
	}
	if req.Featured != nil {
		fields["featured"] = *req.Featured
	}
	if len(fields) == 0 {
		return s.bookRepo.GetByID(ctx, oid)
	}

	return s.bookRepo.Update(ctx, oid, fields)
}

func (s *bookService) Delete(ctx context.Context, identity authz.Identity, id string) error {
	if !authz.CanMutate(identity, "", authz.ActionDelete, authz.ResourceBook) {
		return model.ErrAdminOnly
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NewValidation("invalid book ID")
	}

	return s.bookRepo.Delete(ctx, oid)
}
