package listing

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/tutor-marketplace/pkg/apperr"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewRepo(gdb)
	require.NoError(t, repo.Migrate())
	return NewService(repo)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tutor-1", CreateInput{Title: " ", Subject: "Math", HourlyRate: 40})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = svc.Create(ctx, "tutor-1", CreateInput{Title: "Calc I", Subject: "Math", HourlyRate: 0})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	l, err := svc.Create(ctx, "tutor-1", CreateInput{Title: "Calc I", Subject: "Math", HourlyRate: 40})
	require.NoError(t, err)
	assert.True(t, l.Active)
	assert.NotEmpty(t, l.ID)
}

func TestSearch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tutor-1", CreateInput{Title: "Calculus I help", Subject: "Math", HourlyRate: 40})
	require.NoError(t, err)
	l2, err := svc.Create(ctx, "tutor-2", CreateInput{Title: "Organic Chemistry", Subject: "Chemistry", HourlyRate: 35, Location: "library"})
	require.NoError(t, err)

	all, total, err := svc.Search(ctx, "", 0, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	// case-insensitive, matches across fields
	hits, total, err := svc.Search(ctx, "CHEM", 0, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, hits, 1)
	assert.Equal(t, l2.ID, hits[0].ID)

	hits, _, err = svc.Search(ctx, "library", 0, 25)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, l2.ID, hits[0].ID)

	// deactivated listings drop out of search
	off := false
	_, err = svc.Update(ctx, l2.ID, "tutor-2", UpdateInput{Active: &off})
	require.NoError(t, err)
	_, total, err = svc.Search(ctx, "", 0, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUpdateGuards(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "tutor-1", CreateInput{Title: "Calc I", Subject: "Math", HourlyRate: 40})
	require.NoError(t, err)

	rate := int64(55)
	_, err = svc.Update(ctx, l.ID, "tutor-2", UpdateInput{HourlyRate: &rate})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.Update(ctx, l.ID, "tutor-1", UpdateInput{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	bad := int64(-1)
	_, err = svc.Update(ctx, l.ID, "tutor-1", UpdateInput{HourlyRate: &bad})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, err := svc.Update(ctx, l.ID, "tutor-1", UpdateInput{HourlyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, int64(55), got.HourlyRate)
}

func TestResolve(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "tutor-1", CreateInput{Title: "Calc I", Subject: "Math", HourlyRate: 40})
	require.NoError(t, err)

	tutorID, rate, err := svc.Resolve(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "tutor-1", tutorID)
	assert.Equal(t, int64(40), rate)

	_, _, err = svc.Resolve(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	off := false
	_, err = svc.Update(ctx, l.ID, "tutor-1", UpdateInput{Active: &off})
	require.NoError(t, err)
	_, _, err = svc.Resolve(ctx, l.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
