package repository

import (
	"context"

	"github.com/fdestra28/kasirtta-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, includeInactive bool) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	// CountActiveOwnersTx runs on the caller's tx so the last-owner guard and
	// the mutation it protects see the same snapshot.
	CountActiveOwnersTx(tx *gorm.DB) (int64, error)
	// FindByIDTx row-locks the user so guard checks and the mutation they
	// gate serialize against concurrent updates of the same account.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.User, error)
	UpdateTx(tx *gorm.DB, u *model.User) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DeactivateTx(tx *gorm.DB, id uuid.UUID) error
	// ReferencedTx reports whether any historical row still points at the user.
	ReferencedTx(tx *gorm.DB, id uuid.UUID) (bool, error)
	DB() *gorm.DB
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) DB() *gorm.DB { return r.db }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *userRepo) List(ctx context.Context, includeInactive bool) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("active", false).Error
}

func (r *userRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("active", true).Error
}

func (r *userRepo) CountActiveOwnersTx(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Model(&model.User{}).Where("role = ? AND active = true", model.RoleOwner).Count(&n).Error
	return n, err
}

func (r *userRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *userRepo) UpdateTx(tx *gorm.DB, u *model.User) error {
	return tx.Save(u).Error
}

func (r *userRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) DeactivateTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.User{}).Where("id = ?", id).Update("active", false).Error
}

func (r *userRepo) ReferencedTx(tx *gorm.DB, id uuid.UUID) (bool, error) {
	return AnyReference(tx, UserReferences, id)
}
