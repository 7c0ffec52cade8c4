package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	"github.com/SscSPs/social_media_app/internal/core/domain"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
)

var _ portsrepo.UserRepository = (*UserRepository)(nil)

// UserRepository keeps users in process memory. Email and username are unique.
type UserRepository struct {
	users     map[string]domain.User
	emailIDs  map[string]string // email to user id
	usernames map[string]string // username to user id
	lock      sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:     make(map[string]domain.User),
		emailIDs:  make(map[string]string),
		usernames: make(map[string]string),
	}
}

func (r *UserRepository) InsertUser(_ context.Context, user domain.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.users[user.UserID]; ok {
		return apperrors.ErrDuplicate
	}
	if _, ok := r.emailIDs[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	if _, ok := r.usernames[user.Username]; ok {
		return apperrors.ErrUsernameExists
	}
	r.users[user.UserID] = user
	r.emailIDs[user.Email] = user.UserID
	r.usernames[user.Username] = user.UserID
	return nil
}

func (r *UserRepository) UpdateUser(_ context.Context, userID string, patch domain.UserPatch) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if patch.Username != nil && *patch.Username != user.Username {
		if owner, taken := r.usernames[*patch.Username]; taken && owner != userID {
			return apperrors.ErrUsernameExists
		}
		delete(r.usernames, user.Username)
		r.usernames[*patch.Username] = userID
	}
	patch.Apply(&user)
	r.users[userID] = user
	return nil
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.get(userID)
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.get(r.emailIDs[email])
}

func (r *UserRepository) FindUserByEmailAndPassword(_ context.Context, email, passwordHash string) (*domain.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	user, err := r.get(r.emailIDs[email])
	if err != nil {
		return nil, err
	}
	if user.PasswordHash != passwordHash {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.get(r.usernames[username])
}

// get must be called with the lock held. It returns a copy.
func (r *UserRepository) get(userID string) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}
