package book

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"bookhub/pkg/models"
)

var ErrNotFound = errors.New("book not found")

type Store interface {
	All(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
}

// Service answers catalog queries over the persisted collection.
type Service struct {
	Store Store
}

func NewService(store Store) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]models.Book, error) {
	books, err := s.Store.All(ctx)
	if err != nil {
		return nil, err
	}
	return Paginate(Apply(books, f), limit, offset), nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Book, error) {
	b, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) Search(ctx context.Context, title, category string, limit int) ([]models.Book, error) {
	books, err := s.Store.All(ctx)
	if err != nil {
		return nil, err
	}
	return Paginate(Search(books, title, category), limit, 0), nil
}

func (s *Service) TopRated(ctx context.Context, limit int) ([]models.Book, error) {
	books, err := s.Store.All(ctx)
	if err != nil {
		return nil, err
	}
	return Paginate(TopRated(books), limit, 0), nil
}

// PriceRange accepts open-ended bounds; either may be nil.
func (s *Service) PriceRange(ctx context.Context, minPrice, maxPrice *decimal.Decimal) ([]models.Book, error) {
	books, err := s.Store.All(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(books, Filter{MinPrice: minPrice, MaxPrice: maxPrice}), nil
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	books, err := s.Store.All(ctx)
	if err != nil {
		return Overview{}, err
	}
	return ComputeOverview(books), nil
}

func (s *Service) CategoryStats(ctx context.Context) ([]CategoryStats, error) {
	books, err := s.Store.All(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeCategoryStats(books), nil
}
