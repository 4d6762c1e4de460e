package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bookhub/pkg/datastore"
	"bookhub/pkg/models"
)

var ErrUserExists = errors.New("username already exists")

// Repo reads users from the users JSON file. The file is loaded on every
// call, so accounts provisioned while the server runs are picked up.
type Repo struct {
	Path string

	mu sync.Mutex // serializes Create
}

func NewRepo(path string) *Repo {
	return &Repo{Path: path}
}

func (r *Repo) List(ctx context.Context) ([]models.User, error) {
	users, err := datastore.LoadJSON[models.User](r.Path)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	users, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get by username: %w", err)
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get by id: %w", err)
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create appends u to the users file.
func (r *Repo) Create(ctx context.Context, u models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.List(ctx)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	for _, existing := range users {
		if existing.Username == u.Username {
			return ErrUserExists
		}
	}

	users = append(users, u)
	if err := datastore.WriteJSON(r.Path, users); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
