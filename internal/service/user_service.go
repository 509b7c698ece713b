package service

import (
	"context"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages accounts. Coarse route authorization (owner-only) is
// middleware's job; the checks here are the ones intrinsic to the domain:
// you cannot deactivate yourself, and the store must keep at least one active
// owner at all times.
type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, actorID, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	// Delete hard-deletes only when nothing references the account; any
	// referencing row downgrades the operation to a soft-deactivate.
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to hash password")
	}
	user := &model.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, storeErr(err, "user not found")
	}
	return userToResponse(user), nil
}

func (s *userService) List(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list users")
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = *userToResponse(&users[i])
	}
	return resp, nil
}

func (s *userService) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var user *model.User
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		user, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			return storeErr(err, "user not found")
		}
		if req.Role != "" && req.Role != user.Role && user.Role == model.RoleOwner {
			// Demoting an owner must leave at least one active owner behind.
			owners, err := s.countOwners(tx)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return apperr.InvalidState("cannot demote the last owner")
			}
		}
		if req.FullName != "" {
			user.FullName = req.FullName
		}
		if req.Role != "" {
			user.Role = req.Role
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
			if err != nil {
				return apperr.Wrap(err, "failed to hash password")
			}
			user.PasswordHash = string(hash)
		}
		if err := s.repo.UpdateTx(tx, user); err != nil {
			return apperr.Wrap(err, "failed to update user")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return userToResponse(user), nil
}

func (s *userService) Deactivate(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return apperr.InvalidState("cannot deactivate your own account")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		user, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return storeErr(err, "user not found")
		}
		if user.Role == model.RoleOwner {
			owners, err := s.countOwners(tx)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return apperr.InvalidState("cannot deactivate the last owner")
			}
		}
		return s.repo.DeactivateTx(tx, id)
	})
}

func (s *userService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return storeErr(err, "user not found")
	}
	return s.repo.Reactivate(ctx, id)
}

func (s *userService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return apperr.InvalidState("cannot delete your own account")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		user, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return storeErr(err, "user not found")
		}
		if user.Role == model.RoleOwner {
			return apperr.InvalidState("owner accounts cannot be deleted")
		}
		referenced, err := s.repo.ReferencedTx(tx, id)
		if err != nil {
			return apperr.Wrap(err, "failed to probe references")
		}
		if referenced {
			// History points at this account — keep the row, drop the access.
			return s.repo.DeactivateTx(tx, id)
		}
		return s.repo.DeleteTx(tx, id)
	})
}

func (s *userService) countOwners(tx *gorm.DB) (int64, error) {
	n, err := s.repo.CountActiveOwnersTx(tx)
	if err != nil {
		return 0, apperr.Wrap(err, "failed to count owners")
	}
	return n, nil
}
