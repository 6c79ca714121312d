package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
	"github.com/jhoicas/terraflow-api/internal/infrastructure/memory"
)

func seedUsers(t *testing.T, n int, role string) *memory.UserRepo {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewStore())
	for i := 0; i < n; i++ {
		u := &entity.User{
			Email:        fmt.Sprintf("user%d@x.com", i),
			Role:         role,
			FullName:     fmt.Sprintf("User %d", i),
			PasswordHash: "h",
			IsActive:     true,
		}
		require.NoError(t, repo.Create(context.Background(), u))
	}
	return repo
}

func TestUserUseCase_ListAplicaLimites(t *testing.T) {
	uc := NewUserUseCase(seedUsers(t, 130, entity.RoleCustomer), time.Second)

	items, page, err := uc.List(context.Background(), dto.UserListRequest{})
	require.NoError(t, err)
	assert.Len(t, items, DefaultLimit)
	assert.Equal(t, 130, page.Total)

	items, page, err = uc.List(context.Background(), dto.UserListRequest{Limit: 500, Offset: -3})
	require.NoError(t, err)
	assert.Len(t, items, MaxLimit)
	assert.Equal(t, MaxLimit, page.Limit)
	assert.Equal(t, 0, page.Offset)
}

func TestUserUseCase_ListRolInvalido(t *testing.T) {
	uc := NewUserUseCase(seedUsers(t, 1, entity.RoleCustomer), time.Second)

	_, _, err := uc.List(context.Background(), dto.UserListRequest{Role: "merchant"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUserUseCase_SetStatusYFixRole(t *testing.T) {
	ctx := context.Background()
	repo := seedUsers(t, 1, entity.RoleCustomer)
	uc := NewUserUseCase(repo, time.Second)

	require.NoError(t, uc.SetStatus(ctx, 1, false))
	require.NoError(t, uc.FixRole(ctx, 1, entity.RoleSupplier))

	u, err := uc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, entity.RoleSupplier, u.Role)

	err = uc.FixRole(ctx, 1, "root")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUserUseCase_IDInexistenteEs404(t *testing.T) {
	ctx := context.Background()
	uc := NewUserUseCase(seedUsers(t, 0, entity.RoleCustomer), time.Second)

	for name, err := range map[string]error{
		"status": uc.SetStatus(ctx, 99, true),
		"role":   uc.FixRole(ctx, 99, entity.RoleAdmin),
		"delete": uc.Delete(ctx, 99),
	} {
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err), name)
		assert.ErrorIs(t, err, domain.ErrNotFound, name)
	}
	_, err := uc.GetByID(ctx, 99)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

// blockingUsers bloquea hasta que venza el contexto de la consulta.
type blockingUsers struct {
	repository.UserRepository
}

func (blockingUsers) Delete(ctx context.Context, _ int64) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestUserUseCase_TimeoutDelStore(t *testing.T) {
	uc := NewUserUseCase(blockingUsers{}, 50*time.Millisecond)

	err := uc.Delete(context.Background(), 1)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindInfrastructure, de.Kind)
	assert.Equal(t, "Database error: timeout", de.Message)
}
