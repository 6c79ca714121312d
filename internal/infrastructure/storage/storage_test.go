package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/pkg/config"
)

func TestOpen_Memoria(t *testing.T) {
	ctx := context.Background()
	repos, err := Open(ctx, config.DBConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.Migrate(ctx))
	require.NoError(t, repos.Users.Create(ctx, &entity.User{Email: "a@x.com", Role: entity.RoleCustomer, FullName: "A"}))

	st, err := repos.Analytics.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalUsers)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
