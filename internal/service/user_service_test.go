package service_test

import (
	"context"
	"testing"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"
	"github.com/fdestra28/kasirtta-sub000/internal/dto"
	"github.com/fdestra28/kasirtta-sub000/internal/model"
	"github.com/fdestra28/kasirtta-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userFixture struct {
	svc   service.UserService
	repo  *stubUserRepo
	owner *model.User
	admin *model.User
}

func newUserFixture() *userFixture {
	repo := newStubUserRepo()
	owner := repo.add(&model.User{Username: "owner", FullName: "Store Owner", Role: model.RoleOwner, Active: true})
	admin := repo.add(&model.User{Username: "kasir", FullName: "Cashier", Role: model.RoleAdmin, Active: true})
	return &userFixture{
		svc:   service.NewUserService(repo),
		repo:  repo,
		owner: owner,
		admin: admin,
	}
}

func TestCreateUser(t *testing.T) {
	f := newUserFixture()

	resp, err := f.svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "kasir2",
		Password: "secret123",
		FullName: "Second Cashier",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "kasir2", resp.Username)
	assert.True(t, resp.Active)

	stored, err := f.repo.FindByUsername(context.Background(), "kasir2")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash, "password is stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "kasir",
		Password: "secret123",
		FullName: "Impostor",
		Role:     model.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestDeactivate_SelfRefused(t *testing.T) {
	f := newUserFixture()

	err := f.svc.Deactivate(context.Background(), f.admin.ID, f.admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	assert.True(t, f.admin.Active)
}

func TestDeactivate_LastOwnerRefused(t *testing.T) {
	f := newUserFixture()

	err := f.svc.Deactivate(context.Background(), f.admin.ID, f.owner.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	assert.True(t, f.owner.Active)
}

func TestDeactivate_OwnerWithBackupOwner(t *testing.T) {
	f := newUserFixture()
	second := f.repo.add(&model.User{Username: "owner2", Role: model.RoleOwner, Active: true})

	err := f.svc.Deactivate(context.Background(), f.admin.ID, second.ID)
	require.NoError(t, err)
	assert.False(t, second.Active)
	assert.True(t, f.owner.Active)
}

func TestUpdate_LastOwnerDemotionRefused(t *testing.T) {
	f := newUserFixture()

	_, err := f.svc.Update(context.Background(), f.owner.ID, f.owner.ID, dto.UpdateUserRequest{
		Role: model.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	assert.Equal(t, model.RoleOwner, f.owner.Role)
}

func TestUpdate_DemotionWithBackupOwner(t *testing.T) {
	f := newUserFixture()
	f.repo.add(&model.User{Username: "owner2", Role: model.RoleOwner, Active: true})

	resp, err := f.svc.Update(context.Background(), f.owner.ID, f.owner.ID, dto.UpdateUserRequest{
		Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.Role)
}

func TestUpdate_ReadAndWriteShareOwnerGuardTransaction(t *testing.T) {
	f := newUserFixture()
	f.repo.add(&model.User{Username: "owner2", Role: model.RoleOwner, Active: true})

	_, err := f.svc.Update(context.Background(), f.owner.ID, f.owner.ID, dto.UpdateUserRequest{
		FullName: "Renamed Owner",
	})
	require.NoError(t, err)

	// The read, the owner count and the write all go through the tx-scoped
	// repo methods; none may fall back to the base connection.
	assert.Equal(t, 1, f.repo.txReads)
	assert.Equal(t, 1, f.repo.txWrites)
}

func TestDelete_SelfRefused(t *testing.T) {
	f := newUserFixture()

	err := f.svc.Delete(context.Background(), f.admin.ID, f.admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}

func TestDelete_OwnerRefused(t *testing.T) {
	f := newUserFixture()

	err := f.svc.Delete(context.Background(), f.admin.ID, f.owner.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	_, err = f.repo.FindByID(context.Background(), f.owner.ID)
	assert.NoError(t, err)
}

func TestDelete_ReferencedAccountIsDeactivated(t *testing.T) {
	f := newUserFixture()
	f.repo.referenced[f.admin.ID] = true

	err := f.svc.Delete(context.Background(), f.owner.ID, f.admin.ID)
	require.NoError(t, err)

	stored, err := f.repo.FindByID(context.Background(), f.admin.ID)
	require.NoError(t, err, "referenced account keeps its row")
	assert.False(t, stored.Active)
	assert.Empty(t, f.repo.deleted)
}

func TestDelete_UnreferencedAccountIsRemoved(t *testing.T) {
	f := newUserFixture()

	err := f.svc.Delete(context.Background(), f.owner.ID, f.admin.ID)
	require.NoError(t, err)

	_, err = f.repo.FindByID(context.Background(), f.admin.ID)
	assert.Error(t, err)
	assert.Equal(t, []uuid.UUID{f.admin.ID}, f.repo.deleted)
}

func TestList_FiltersInactive(t *testing.T) {
	f := newUserFixture()
	f.admin.Active = false

	active, err := f.svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := f.svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
