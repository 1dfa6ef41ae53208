package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"quicknotes-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type UserRepository interface {
	Create(user *domain.User) error
	FindByUsername(username string) (*domain.User, error)
	UsernameExists(username string) (bool, error)
}

type userRepository struct {
	client *kivik.Client
	dbName string
}

func NewUserRepository(client *kivik.Client, dbName string) UserRepository {
	return &userRepository{
		client: client,
		dbName: dbName,
	}
}

// User documents are keyed by username, so the database itself enforces
// username uniqueness: the second Put for the same name fails with a 409.
func userDocID(username string) string {
	return fmt.Sprintf("user:%s", username)
}

func (r *userRepository) Create(user *domain.User) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), userDocID(user.Username), user)
	if err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), userDocID(username))

	var user domain.User
	if err := row.ScanDoc(&user); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UsernameExists(username string) (bool, error) {
	_, err := r.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
