package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blood-donor-service/internal/core/database"
	"blood-donor-service/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "repo.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func mustCreateUser(t *testing.T, r *UserRepo, u domain.User) domain.User {
	t.Helper()
	require.NoError(t, r.Create(context.Background(), &u))
	return u
}

func TestUserRepoCreateAssignsIDs(t *testing.T) {
	r := NewUserRepo(newTestDB(t))

	a := mustCreateUser(t, r, domain.User{Name: "Alice", BloodType: "O-", Role: domain.RoleDonor, ContactInfo: "555-1234", Available: true})
	b := mustCreateUser(t, r, domain.User{Name: "Bob", BloodType: "O-", Role: domain.RoleDonor, ContactInfo: "555-5678", Available: false})

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.True(t, a.Available)
	assert.False(t, b.Available, "explicit false must survive the column default")
}

func TestUserRepoFindAvailableDonors(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	alice := mustCreateUser(t, r, domain.User{Name: "Alice", BloodType: "O-", Role: domain.RoleDonor, Available: true})
	mustCreateUser(t, r, domain.User{Name: "Bob", BloodType: "O-", Role: domain.RoleDonor, Available: false})
	mustCreateUser(t, r, domain.User{Name: "Carol", BloodType: "o-", Role: domain.RoleDonor, Available: true})
	mustCreateUser(t, r, domain.User{Name: "St. Mary", BloodType: "O-", Role: domain.RoleHospital, Available: true})
	dave := mustCreateUser(t, r, domain.User{Name: "Dave", BloodType: "O-", Role: domain.RoleDonor, Available: true})

	got, err := r.FindAvailableDonors(ctx, "O-")
	require.NoError(t, err)
	assert.Equal(t, []domain.User{alice, dave}, got)

	none, err := r.FindAvailableDonors(ctx, "AB+")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepoFindByRole(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	mustCreateUser(t, r, domain.User{Name: "Alice", Role: domain.RoleDonor, Available: true})
	h := mustCreateUser(t, r, domain.User{Name: "General", Role: domain.RoleHospital, Available: true})
	mustCreateUser(t, r, domain.User{Name: "Clinic", Role: "clinic", Available: true})

	got, err := r.FindByRole(ctx, domain.RoleHospital)
	require.NoError(t, err)
	assert.Equal(t, []domain.User{h}, got)
}

func TestUserRepoList(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()
	for _, n := range []string{"Alice", "Bob", "Alina", "Zed"} {
		mustCreateUser(t, r, domain.User{Name: n, BloodType: "A+", Role: domain.RoleDonor, Available: true})
	}

	items, total, err := r.List(ctx, domain.UserFilter{Q: "Al"}, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Alina", items[0].Name)

	items, total, err = r.List(ctx, domain.UserFilter{Role: domain.RoleHospital}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestBloodRequestRepo(t *testing.T) {
	r := NewBloodRequestRepo(newTestDB(t))
	ctx := context.Background()

	first := domain.BloodRequest{HospitalID: 999, BloodType: "B+", Status: domain.StatusPending}
	require.NoError(t, r.Create(ctx, &first))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(999), first.HospitalID)

	second := domain.BloodRequest{HospitalID: 1, BloodType: "A-", Status: domain.StatusPending}
	require.NoError(t, r.Create(ctx, &second))

	items, total, err := r.List(ctx, domain.BloodRequestFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []domain.BloodRequest{second, first}, items)

	items, total, err = r.List(ctx, domain.BloodRequestFilter{HospitalID: 999, Status: domain.StatusPending}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []domain.BloodRequest{first}, items)
}
