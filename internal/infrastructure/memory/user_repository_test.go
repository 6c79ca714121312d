package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

func newUser(email, role, name string) *entity.User {
	return &entity.User{Email: email, Role: role, FullName: name, PasswordHash: "h", IsActive: true}
}

func TestUserRepo_CreateAsignaIDYRechazaDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	u := newUser("jane@x.com", entity.RoleCustomer, "Jane Doe")
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	err := repo.Create(ctx, newUser("jane@x.com", entity.RoleSupplier, "Otra"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepo_CreateConcurrenteMismoEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewUserRepository(store)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, newUser("race@x.com", entity.RoleCustomer, "Race"))
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		}
	}
	assert.Equal(t, 1, ok, "exactamente un insert debe tener éxito")
	assert.Equal(t, 1, store.UserCount())
}

func TestUserRepo_ListFiltraYPagina(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	require.NoError(t, repo.Create(ctx, newUser("a@x.com", entity.RoleCustomer, "Ana")))
	s := newUser("b@x.com", entity.RoleSupplier, "Beto")
	s.BusinessName = "Arcillas del Sur"
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Create(ctx, newUser("c@x.com", entity.RoleCustomer, "Carla")))

	list, total, err := repo.List(ctx, repository.UserFilter{Role: entity.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "c@x.com", list[0].Email, "más reciente primero")

	list, _, err = repo.List(ctx, repository.UserFilter{Search: "ARCILLAS"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b@x.com", list[0].Email)

	list, total, err = repo.List(ctx, repository.UserFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 1)
	assert.Equal(t, "b@x.com", list[0].Email)
}

func TestUserRepo_MutacionesIDInexistente(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 99, false), domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateRole(ctx, 99, entity.RoleAdmin), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 99), domain.ErrNotFound)
}

func TestUserRepo_DeleteLiberaEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())
	u := newUser("a@x.com", entity.RoleCustomer, "Ana")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Delete(ctx, u.ID))

	got, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, repo.Create(ctx, newUser("a@x.com", entity.RoleCustomer, "Ana")))
}

func TestUserRepo_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewUserRepository(NewStore()).FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, context.Canceled)
}
