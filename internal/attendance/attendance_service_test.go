package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "dayflow-hrms/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memRepo struct {
	employees map[string]bool
	rows      map[string]*Attendance
	createErr error
	counts    []StatusCount
	lastQuery Filter
}

func newMemRepo(employeeIDs ...string) *memRepo {
	r := &memRepo{employees: map[string]bool{}, rows: map[string]*Attendance{}}
	for _, id := range employeeIDs {
		r.employees[id] = true
	}
	return r
}

func key(employeeID string, day time.Time) string {
	return employeeID + "/" + day.Format(dateLayout)
}

func (r *memRepo) WithTx(*sql.Tx) Repository { return r }

func (r *memRepo) Create(_ context.Context, a *Attendance) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *a
	r.rows[key(a.EmployeeID.String(), a.Date)] = &cp
	return nil
}

func (r *memRepo) Update(_ context.Context, a *Attendance) error {
	cp := *a
	r.rows[key(a.EmployeeID.String(), a.Date)] = &cp
	return nil
}

func (r *memRepo) FindByEmployeeAndDate(_ context.Context, employeeID string, day time.Time) (*Attendance, error) {
	a, ok := r.rows[key(employeeID, day)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) FindAll(_ context.Context, f Filter) ([]Attendance, int64, error) {
	r.lastQuery = f
	var out []Attendance
	for _, a := range r.rows {
		if f.EmployeeID == "" || a.EmployeeID.String() == f.EmployeeID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) CountByStatus(_ context.Context, f Filter) ([]StatusCount, error) {
	r.lastQuery = f
	return r.counts, nil
}

func (r *memRepo) EmployeeExists(_ context.Context, id string) (bool, error) {
	return r.employees[id], nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T, repo Repository, c *clock) (*service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := NewService(db, repo).(*service)
	svc.now = c.now
	return svc, mock
}

func TestRecomputeWorkHours(t *testing.T) {
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		out  *time.Time
		want string
	}{
		{"no checkout", nil, "0"},
		{"eight and a half hours", ptr(in.Add(8*time.Hour + 30*time.Minute)), "8.5"},
		{"rounds to two places", ptr(in.Add(7*time.Hour + 20*time.Minute)), "7.33"},
		{"checkout before checkin", ptr(in.Add(-time.Minute)), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := recomputeWorkHours(&Attendance{CheckIn: &in, CheckOut: tt.out})
			assert.True(t, decimal.RequireFromString(tt.want).Equal(a.WorkHours), a.WorkHours.String())
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestCheckInAndOut(t *testing.T) {
	empID := uuid.NewString()
	repo := newMemRepo(empID)
	c := &clock{t: time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)}
	svc, mock := newTestService(t, repo, c)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(ctx, empID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, StatusPresent, resp.Status)
	require.NotNil(t, resp.CheckIn)
	assert.Nil(t, resp.CheckOut)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckIn(ctx, empID)
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)

	c.t = c.t.Add(8 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.CheckOut(ctx, empID)
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOut)
	assert.Equal(t, "8", resp.WorkHours.String())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(ctx, empID)
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	empID := uuid.NewString()
	svc, mock := newTestService(t, newMemRepo(empID), &clock{t: time.Now().UTC()})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckOut(context.Background(), empID)

	assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_FillsMarkedRecord(t *testing.T) {
	empID := uuid.NewString()
	repo := newMemRepo(empID)
	c := &clock{t: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	day := c.t.Truncate(24 * time.Hour)
	repo.rows[key(empID, day)] = &Attendance{
		ID: uuid.New(), EmployeeID: uuid.MustParse(empID), Date: day, Status: StatusAbsent,
	}
	svc, mock := newTestService(t, repo, c)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckIn(context.Background(), empID)

	require.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
	assert.NotNil(t, resp.CheckIn)
}

func TestCheckIn_ConcurrentInsertIsRejected(t *testing.T) {
	empID := uuid.NewString()
	repo := newMemRepo(empID)
	repo.createErr = &pgconn.PgError{Code: "23505"}
	svc, mock := newTestService(t, repo, &clock{t: time.Now().UTC()})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), empID)

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
}

func TestGetToday(t *testing.T) {
	empID := uuid.NewString()
	repo := newMemRepo(empID)
	c := &clock{t: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
	svc, _ := newTestService(t, repo, c)

	got, err := svc.GetToday(context.Background(), empID)
	require.NoError(t, err)
	assert.Nil(t, got)

	day := c.t.Truncate(24 * time.Hour)
	repo.rows[key(empID, day)] = &Attendance{ID: uuid.New(), EmployeeID: uuid.MustParse(empID), Date: day, Status: StatusHalfDay}

	got, err = svc.GetToday(context.Background(), empID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StatusHalfDay, got.Status)
}

func TestMark(t *testing.T) {
	empID := uuid.NewString()

	t.Run("creates then updates", func(t *testing.T) {
		repo := newMemRepo(empID)
		svc, mock := newTestService(t, repo, &clock{t: time.Now().UTC()})
		req := MarkAttendanceRequest{EmployeeID: empID, Date: "2026-03-01", Status: StatusAbsent}

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, created, err := svc.Mark(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, StatusAbsent, resp.Status)

		req.Status = StatusLeave
		req.Remarks = "approved sick leave"
		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, created, err = svc.Mark(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, StatusLeave, resp.Status)
		assert.Equal(t, "approved sick leave", resp.Remarks)
		assert.Len(t, repo.rows, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, mock := newTestService(t, newMemRepo(), &clock{t: time.Now().UTC()})
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, _, err := svc.Mark(context.Background(), MarkAttendanceRequest{EmployeeID: empID, Date: "2026-03-01", Status: StatusPresent})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("bad input", func(t *testing.T) {
		svc, _ := newTestService(t, newMemRepo(empID), &clock{t: time.Now().UTC()})

		_, _, err := svc.Mark(context.Background(), MarkAttendanceRequest{EmployeeID: empID, Date: "01/03/2026", Status: StatusPresent})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)

		_, _, err = svc.Mark(context.Background(), MarkAttendanceRequest{EmployeeID: empID, Date: "2026-03-01", Status: "late"})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
	})
}

func TestSummary(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(t, repo, &clock{t: time.Now().UTC()})
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	got, err := svc.Summary(context.Background(), Filter{EmployeeID: "e1", StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, []StatusCount{}, got)
	assert.Equal(t, "e1", repo.lastQuery.EmployeeID)

	repo.counts = []StatusCount{{Status: StatusPresent, Count: 18}, {Status: StatusLeave, Count: 2}}
	got, err = svc.Summary(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.Summary(context.Background(), Filter{StartDate: &end, EndDate: &start})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}
