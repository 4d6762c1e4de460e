package book

import (
	"context"
	"fmt"

	"bookhub/pkg/datastore"
	"bookhub/pkg/models"
)

// Repo reads the books file on every call; there is no cache, so a finished
// scrape is visible to the next request.
type Repo struct {
	Path string
}

func NewRepo(path string) *Repo {
	return &Repo{Path: path}
}

func (r *Repo) All(ctx context.Context) ([]models.Book, error) {
	books, err := datastore.LoadJSON[models.Book](r.Path)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	return books, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Book, error) {
	books, err := r.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get by id: %w", err)
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, nil
}
