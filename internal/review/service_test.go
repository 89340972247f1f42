package review

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/tutor-marketplace/internal/account"
	"github.com/you/tutor-marketplace/internal/booking"
	"github.com/you/tutor-marketplace/pkg/apperr"
)

type stubBookings map[string]*booking.Booking

func (s stubBookings) Lookup(_ context.Context, id string) (*booking.Booking, error) {
	b, ok := s[id]
	if !ok {
		return nil, apperr.NotFound("booking %s not found", id)
	}
	return b, nil
}

func newTestService(t *testing.T) (*Service, stubBookings, *gorm.DB) {
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
	// reviewer names come from the profiles table
	require.NoError(t, account.NewRepo(gdb).Migrate())

	gate := stubBookings{
		"done": {ID: "done", StudentID: "student-1", TutorID: "tutor-5", Status: booking.StatusCompleted},
		"open": {ID: "open", StudentID: "student-1", TutorID: "tutor-5", Status: booking.StatusConfirmed},
	}
	return NewService(repo, gate), gate, gdb
}

func TestCreateGuards(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		bookingID string
		reviewer  string
		rating    int
		wantKind  apperr.Kind
	}{
		{"rating too low", "done", "student-1", 0, apperr.KindValidation},
		{"rating too high", "done", "student-1", 6, apperr.KindValidation},
		{"unknown booking", "missing", "student-1", 5, apperr.KindNotFound},
		{"not the student", "done", "tutor-5", 5, apperr.KindForbidden},
		{"booking not completed", "open", "student-1", 5, apperr.KindInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.bookingID, tt.reviewer, tt.rating, "")
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestCreateOncePerBooking(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	rv, err := svc.Create(ctx, "done", "student-1", 5, "great session")
	require.NoError(t, err)
	assert.Equal(t, "tutor-5", rv.RevieweeID)
	assert.Equal(t, "student-1", rv.ReviewerID)

	_, err = svc.Create(ctx, "done", "student-1", 3, "second thoughts")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestForTutorAggregateAndPaging(t *testing.T) {
	svc, gate, gdb := newTestService(t)
	ctx := context.Background()

	require.NoError(t, gdb.Create(&account.Profile{UserID: "student-1", FirstName: "Ada", LastName: "Lovelace"}).Error)

	gate["done-2"] = &booking.Booking{ID: "done-2", StudentID: "student-1", TutorID: "tutor-5", Status: booking.StatusCompleted}
	_, err := svc.Create(ctx, "done", "student-1", 5, "great")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond) // keep created_at ordering stable
	_, err = svc.Create(ctx, "done-2", "student-1", 4, "good")
	require.NoError(t, err)

	out, err := svc.ForTutor(ctx, "tutor-5", 1, 10)
	require.NoError(t, err)
	require.NotNil(t, out.AverageRating)
	assert.InDelta(t, 4.5, *out.AverageRating, 0.001)
	assert.Equal(t, int64(2), out.Total)
	require.Len(t, out.Reviews, 2)
	assert.Equal(t, 4, out.Reviews[0].Rating) // newest first
	assert.Equal(t, "Ada", out.Reviews[0].Reviewer.FirstName)

	paged, err := svc.ForTutor(ctx, "tutor-5", 2, 1)
	require.NoError(t, err)
	require.Len(t, paged.Reviews, 1)
	assert.Equal(t, 5, paged.Reviews[0].Rating)

	empty, err := svc.ForTutor(ctx, "tutor-unknown", 1, 10)
	require.NoError(t, err)
	assert.Nil(t, empty.AverageRating)
	assert.Equal(t, int64(0), empty.Total)
	assert.Empty(t, empty.Reviews)

	_, err = svc.ForTutor(ctx, "", 1, 10)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
