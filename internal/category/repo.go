package category

import (
	"context"
	"fmt"

	"bookhub/pkg/datastore"
	"bookhub/pkg/models"
)

type Repo struct {
	Path string
}

func NewRepo(path string) *Repo {
	return &Repo{Path: path}
}

func (r *Repo) All(ctx context.Context) ([]models.Category, error) {
	cats, err := datastore.LoadJSON[models.Category](r.Path)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return cats, nil
}
