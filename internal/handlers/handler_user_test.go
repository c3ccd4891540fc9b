package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/dto"
	"github.com/pharmago/pharmago_backend/internal/middleware"
	"github.com/pharmago/pharmago_backend/pkg/pagination"
)

// --- Mock UserService ---

type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, query dto.ListUsersQuery, page pagination.Params) ([]domain.User, pagination.Meta, error) {
	args := m.Called(ctx, query, page)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	args := m.Called(ctx, userID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID int64, actor domain.Actor, hard bool) error {
	args := m.Called(ctx, userID, actor, hard)
	return args.Error(0)
}

// --- Test Suite ---

type UserHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *MockUserService
}

func (suite *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockUserService = new(MockUserService)

	principal := &domain.Principal{
		Audience: domain.AudienceManage,
		User:     &domain.User{UserID: 9, PhoneNumber: "0900000000", Type: domain.UserTypeAdmin},
	}

	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	})
	v1 := suite.router.Group("/api/v1")
	registerUserRoutes(v1, suite.mockUserService)
}

func (suite *UserHandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *UserHandlerTestSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (suite *UserHandlerTestSuite) TestCreateUser_Success() {
	code := "ST2024031500007"
	created := &domain.User{
		UserID:      7,
		PhoneNumber: "0901234567",
		Code:        &code,
		FullName:    "New Staff",
		Type:        domain.UserTypeStaff,
		Status:      domain.StatusActivated,
	}

	suite.mockUserService.On("CreateUser", mock.Anything, mock.MatchedBy(func(req dto.CreateUserRequest) bool {
		return req.PhoneNumber == "0901234567" && req.Type == "STAFF"
	}), domain.Actor{Kind: domain.ActorUser, ID: 9}).Return(created, nil).Once()

	rec := suite.perform(http.MethodPost, "/api/v1/users", gin.H{
		"phone_number": "0901234567",
		"password":     "secret123",
		"full_name":    "New Staff",
		"type":         "STAFF",
	})

	suite.Equal(http.StatusCreated, rec.Code)
	body := suite.decode(rec)
	suite.Equal(true, body["success"])
	data := body["data"].(map[string]any)
	suite.Equal(float64(7), data["user_id"])
	suite.Equal("ST2024031500007", data["code"])
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestCreateUser_MissingFields() {
	rec := suite.perform(http.MethodPost, "/api/v1/users", gin.H{"phone_number": "0901234567"})

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserHandlerTestSuite) TestGetUser_StripsDeletionTag() {
	user := &domain.User{UserID: 3, PhoneNumber: "0901234567__deleted__3", Type: domain.UserTypeStaff}
	user.IsDelete = true

	suite.mockUserService.On("GetUserByID", mock.Anything, int64(3)).Return(user, nil).Once()

	rec := suite.perform(http.MethodGet, "/api/v1/users/3", nil)

	suite.Equal(http.StatusOK, rec.Code)
	data := suite.decode(rec)["data"].(map[string]any)
	suite.Equal("0901234567", data["phone_number"])
	suite.Equal(true, data["is_delete"])
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestGetUser_NotFound() {
	suite.mockUserService.On("GetUserByID", mock.Anything, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	rec := suite.perform(http.MethodGet, "/api/v1/users/404", nil)

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Equal(false, suite.decode(rec)["success"])
}

func (suite *UserHandlerTestSuite) TestGetUser_BadID() {
	rec := suite.perform(http.MethodGet, "/api/v1/users/abc", nil)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *UserHandlerTestSuite) TestListUsers_CarriesPaginationMeta() {
	next := 3
	prev := 1
	meta := pagination.Meta{Count: 25, NumPages: 3, CurrentPage: 2, PerPage: 10, NextPage: &next, PreviousPage: &prev}

	suite.mockUserService.On("ListUsers", mock.Anything,
		dto.ListUsersQuery{Keyword: "09"},
		pagination.Params{Page: 2, PerPage: 10},
	).Return([]domain.User{{UserID: 11}, {UserID: 12}}, meta, nil).Once()

	rec := suite.perform(http.MethodGet, "/api/v1/users?page=2&per_page=10&keyword=09", nil)

	suite.Equal(http.StatusOK, rec.Code)
	body := suite.decode(rec)
	suite.Len(body["data"], 2)
	metadata := body["metadata"].(map[string]any)
	suite.Equal(float64(25), metadata["count"])
	suite.Equal(float64(3), metadata["num_pages"])
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestDeleteUser_HardFlag() {
	suite.mockUserService.On("DeleteUser", mock.Anything, int64(3), domain.Actor{Kind: domain.ActorUser, ID: 9}, true).
		Return(nil).Once()

	rec := suite.perform(http.MethodDelete, "/api/v1/users/3?hard=true", nil)

	suite.Equal(http.StatusOK, rec.Code)
	body := suite.decode(rec)
	suite.Equal(float64(200), body["status"])
	suite.Equal("deleted", body["message"])
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestDeleteUser_AlreadyDeleted() {
	suite.mockUserService.On("DeleteUser", mock.Anything, int64(3), mock.Anything, false).
		Return(apperrors.NewAppError(apperrors.ErrAlreadyDeleted, "user is already deleted", nil)).Once()

	rec := suite.perform(http.MethodDelete, "/api/v1/users/3", nil)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("user is already deleted", suite.decode(rec)["message"])
	suite.mockUserService.AssertExpectations(suite.T())
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
