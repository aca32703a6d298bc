package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sauce1111/memberdir/internal/member/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Search(ctx context.Context, f model.Filter) ([]model.Member, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *mockService) GetMember(ctx context.Context, username string, withTeam bool) (*model.Member, error) {
	args := m.Called(ctx, username, withTeam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *mockService) ListPage(ctx context.Context, offset, limit int) (*model.MemberPage, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MemberPage), args.Error(1)
}

func (m *mockService) BulkRename(ctx context.Context, username string, ageUnder int) (int64, error) {
	args := m.Called(ctx, username, ageUnder)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockService) DeleteOlderThan(ctx context.Context, age int) (int64, error) {
	args := m.Called(ctx, age)
	return args.Get(0).(int64), args.Error(1)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, zap.NewNop().Sugar())

	r := gin.New()
	r.GET("/members", h.ListPage)
	r.GET("/members/search", h.Search)
	r.GET("/members/get", h.GetMember)
	r.POST("/members/bulk/rename", h.BulkRename)
	r.DELETE("/members", h.DeleteOlderThan)
	return r
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestHandler_Search(t *testing.T) {
	t.Run("passes filter from query", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)

		expected := []model.Member{{Username: strPtr("member1"), Age: 10}}
		svc.On("Search", mock.Anything, model.Filter{Username: strPtr("member1"), Age: intPtr(10)}).
			Return(expected, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/search?username=member1&age=10", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Members []model.Member `json:"members"`
			Total   int            `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Members, 1)
		assert.Equal(t, "member1", *resp.Members[0].Username)
		svc.AssertExpectations(t)
	})

	t.Run("no parameters means empty filter", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Search", mock.Anything, model.Filter{}).Return([]model.Member{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/search", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("non-integer age", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/search?age=ten", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Search")
	})

	t.Run("negative age from service", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Search", mock.Anything, mock.Anything).Return(nil, model.ErrInvalidAge)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/search?age=-1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/search", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandler_GetMember(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("GetMember", mock.Anything, "member1", false).
			Return(&model.Member{Username: strPtr("member1"), Age: 10}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/get?username=member1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("with team flag", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("GetMember", mock.Anything, "member1", true).
			Return(&model.Member{Username: strPtr("member1"), Age: 10}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/get?username=member1&with_team=true", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("GetMember", mock.Anything, "ghost", false).Return(nil, model.ErrMemberNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/get?username=ghost", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ambiguous", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("GetMember", mock.Anything, "dup", false).Return(nil, model.ErrAmbiguousMember)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members/get?username=dup", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_ListPage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("ListPage", mock.Anything, 1, 2).
			Return(&model.MemberPage{Total: 4, Members: []model.Member{}}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members?offset=1&limit=2", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid offset", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members?offset=abc", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ListPage")
	})

	t.Run("service rejects paging", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("ListPage", mock.Anything, 0, 1000).Return(nil, model.ErrInvalidPage)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/members?limit=1000", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_BulkRename(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("BulkRename", mock.Anything, "guest", 28).Return(int64(2), nil)

		body, _ := json.Marshal(model.BulkRenameRequest{Username: "guest", AgeUnder: 28})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/members/bulk/rename", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.BulkResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.EqualValues(t, 2, resp.Affected)
		svc.AssertExpectations(t)
	})

	t.Run("missing username in body", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/members/bulk/rename", bytes.NewReader([]byte(`{"age_under":28}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "BulkRename")
	})
}

func TestHandler_DeleteOlderThan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("DeleteOlderThan", mock.Anything, 18).Return(int64(3), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/members?older_than=18", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp model.BulkResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.EqualValues(t, 3, resp.Affected)
		svc.AssertExpectations(t)
	})

	t.Run("missing parameter", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/members", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "DeleteOlderThan")
	})
}
