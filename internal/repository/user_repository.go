package repository

import (
	"context"

	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/model"
	"sustainshare/internal/store"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Remove(ctx context.Context, id string) error
}

// userRecord is the persisted form of a user. model.User hides the password
// hash from JSON entirely, which is right for API responses but would drop
// the hash on every store write; the record carries it explicitly so
// credentials survive the round trip.
type userRecord struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

func toUserRecord(u model.User) userRecord {
	return userRecord{User: u, PasswordHash: u.PasswordHash}
}

func (r userRecord) toUser() model.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	return u
}

type userRepository struct {
	store store.Store
}

// NewUserRepository builds a store-backed user repository.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) records(ctx context.Context) ([]userRecord, error) {
	var records []userRecord
	if err := r.store.ReadCollection(ctx, model.CollectionUsers, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	records, err := r.records(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(records))
	for _, rec := range records {
		users = append(users, rec.toUser())
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	records, err := r.records(ctx)
	if err != nil {
		return err
	}
	records = append(records, toUserRecord(*user))
	return r.store.WriteCollection(ctx, model.CollectionUsers, records)
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	records, err := r.records(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == user.ID {
			records[i] = toUserRecord(*user)
			return r.store.WriteCollection(ctx, model.CollectionUsers, records)
		}
	}
	return apperrors.ErrUserNotFound
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	records, err := r.records(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			user := records[i].toUser()
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	records, err := r.records(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Email == email {
			user := records[i].toUser()
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// FindByEmailOrUsername backs the signup uniqueness check.
func (r *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	records, err := r.records(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Email == email || (username != "" && records[i].Username == username) {
			user := records[i].toUser()
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepository) Remove(ctx context.Context, id string) error {
	return store.RemoveByID(ctx, r.store, model.CollectionUsers, id)
}
