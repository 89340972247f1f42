package account

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/tutor-marketplace/pkg/apperr"
)

type nopPublisher struct{}

func (nopPublisher) PublishJSON(context.Context, string, any) error { return nil }

type capturePublisher struct {
	keys     []string
	payloads []any
}

func (c *capturePublisher) PublishJSON(_ context.Context, key string, v any) error {
	c.keys = append(c.keys, key)
	c.payloads = append(c.payloads, v)
	return nil
}

func newTestService(t *testing.T, pub EventPublisher) *Service {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewRepo(gdb)
	require.NoError(t, repo.Migrate())
	return NewService(repo, pub, time.Hour)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t, nopPublisher{})
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"non-edu email", "x@gmail.com", "Passw0rdX", "STUDENT"},
		{"short password", "x@uni.edu", "Pw1", "STUDENT"},
		{"no digit", "x@uni.edu", "Password", "STUDENT"},
		{"no upper", "x@uni.edu", "passw0rd", "STUDENT"},
		{"bad role", "x@uni.edu", "Passw0rdX", "ADMIN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.role)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestRegisterVerifyLogin(t *testing.T) {
	pub := &capturePublisher{}
	svc := newTestService(t, pub)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada@Uni.EDU", "Passw0rdX", "tutor")
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.edu", u.Email) // normalized
	assert.Equal(t, RoleTutor, u.Role)
	assert.False(t, u.IsVerified)
	assert.NotEmpty(t, u.VerificationToken)
	require.Equal(t, []string{"account.registered"}, pub.keys)

	// duplicate email
	_, err = svc.Register(ctx, "ada@uni.edu", "Passw0rdX", "tutor")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// verify with garbage, then with the real token
	err = svc.Verify(ctx, "not-a-token")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	require.NoError(t, svc.Verify(ctx, u.VerificationToken))
	// token is burned
	err = svc.Verify(ctx, u.VerificationToken)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = svc.Login(ctx, "ada@uni.edu", "wrong-password")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	_, _, err = svc.Login(ctx, "nobody@uni.edu", "Passw0rdX")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	got, token, err := svc.Login(ctx, "ada@uni.edu", "Passw0rdX")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestProfileUpsert(t *testing.T) {
	svc := newTestService(t, nopPublisher{})
	ctx := context.Background()

	u, err := svc.Register(ctx, "ada@uni.edu", "Passw0rdX", "student")
	require.NoError(t, err)

	// registration creates an empty profile row
	v, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.edu", v.Email)
	assert.Empty(t, v.FirstName)

	first, bio := "Ada", "I like math."
	v, err = svc.UpdateProfile(ctx, u.ID, ProfileUpdate{FirstName: &first, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Ada", v.FirstName)
	assert.Equal(t, "I like math.", v.Bio)

	// partial update leaves other fields alone
	last := "Lovelace"
	v, err = svc.UpdateProfile(ctx, u.ID, ProfileUpdate{LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Ada", v.FirstName)
	assert.Equal(t, "Lovelace", v.LastName)

	_, err = svc.UpdateProfile(ctx, u.ID, ProfileUpdate{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.GetProfile(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
