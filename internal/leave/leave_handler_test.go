package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow-hrms/internal/leave"
	leaveerrors "dayflow-hrms/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	leave.Service

	applyFn   func(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	getAllFn  func(ctx context.Context, f leave.ListFilter) ([]leave.LeaveResponse, int64, error)
	approveFn func(ctx context.Context, reviewerID, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error)
	cancelFn  func(ctx context.Context, employeeID, id string) error
}

func (f *fakeLeaveService) Apply(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, employeeID, req)
}

func (f *fakeLeaveService) GetAll(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveResponse, int64, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeLeaveService) Approve(ctx context.Context, reviewerID, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, reviewerID, id, req)
}

func (f *fakeLeaveService) Cancel(ctx context.Context, employeeID, id string) error {
	return f.cancelFn(ctx, employeeID, id)
}

func testContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestHandler_Apply(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeLeaveService{applyFn: func(_ context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, "emp-1", employeeID)
			assert.Equal(t, leave.TypeSick, req.LeaveType)
			return leave.LeaveResponse{ID: "l1", Status: leave.StatusPending, TotalDays: 2}, nil
		}}
		c, w := testContext(http.MethodPost, "/api/v1/leaves/apply",
			`{"leaveType":"sick","startDate":"2026-11-02","endDate":"2026-11-03","reason":"flu"}`)
		c.Set("employee_id", "emp-1")

		leave.NewHandler(svc).Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"totalDays":2`)
	})

	t.Run("missing reason", func(t *testing.T) {
		c, w := testContext(http.MethodPost, "/api/v1/leaves/apply",
			`{"leaveType":"sick","startDate":"2026-11-02","endDate":"2026-11-03"}`)

		leave.NewHandler(&fakeLeaveService{}).Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("overlap", func(t *testing.T) {
		svc := &fakeLeaveService{applyFn: func(context.Context, string, leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
		}}
		c, w := testContext(http.MethodPost, "/api/v1/leaves/apply",
			`{"leaveType":"paid","startDate":"2026-11-02","endDate":"2026-11-03","reason":"trip"}`)

		leave.NewHandler(svc).Apply(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_GetAll(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		svc := &fakeLeaveService{getAllFn: func(_ context.Context, f leave.ListFilter) ([]leave.LeaveResponse, int64, error) {
			assert.Equal(t, leave.StatusPending, f.Status)
			assert.Equal(t, leave.TypeCasual, f.LeaveType)
			assert.Equal(t, 10, f.Limit)
			return []leave.LeaveResponse{}, 0, nil
		}}
		c, w := testContext(http.MethodGet, "/api/v1/leaves?status=pending&leaveType=casual", "")

		leave.NewHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		c, w := testContext(http.MethodGet, "/api/v1/leaves?status=cancelled", "")

		leave.NewHandler(&fakeLeaveService{}).GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Approve(t *testing.T) {
	svc := &fakeLeaveService{approveFn: func(_ context.Context, reviewerID, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
		assert.Equal(t, "user-7", reviewerID)
		assert.Equal(t, "l1", id)
		assert.Equal(t, "ok", req.ReviewComments)
		return leave.LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}}
	c, w := testContext(http.MethodPatch, "/api/v1/leaves/l1/approve", `{"reviewComments":"ok"}`)
	c.Params = gin.Params{{Key: "id", Value: "l1"}}
	c.Set("user_id", "user-7")

	leave.NewHandler(svc).Approve(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already been reviewed")
}

func TestHandler_Cancel(t *testing.T) {
	svc := &fakeLeaveService{cancelFn: func(_ context.Context, employeeID, id string) error {
		assert.Equal(t, "emp-1", employeeID)
		assert.Equal(t, "l1", id)
		return nil
	}}
	c, w := testContext(http.MethodDelete, "/api/v1/leaves/l1", "")
	c.Params = gin.Params{{Key: "id", Value: "l1"}}
	c.Set("employee_id", "emp-1")

	leave.NewHandler(svc).Cancel(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}
