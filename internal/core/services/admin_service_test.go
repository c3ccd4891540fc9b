package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
	portssvc "github.com/pharmago/pharmago_backend/internal/core/ports/services"
	"github.com/pharmago/pharmago_backend/internal/core/services"
	"github.com/pharmago/pharmago_backend/internal/utils"
)

// --- Mock AdminRepository ---

type MockAdminRepository struct {
	mock.Mock
}

var _ portsrepo.AdminRepository = (*MockAdminRepository)(nil)

func (m *MockAdminRepository) CreateAdmin(ctx context.Context, admin domain.Admin) (*domain.Admin, error) {
	args := m.Called(ctx, admin)
	var created *domain.Admin
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.Admin)
	}
	return created, args.Error(1)
}

func (m *MockAdminRepository) FindAdminByID(ctx context.Context, adminID int64) (*domain.Admin, error) {
	args := m.Called(ctx, adminID)
	var admin *domain.Admin
	if args.Get(0) != nil {
		admin = args.Get(0).(*domain.Admin)
	}
	return admin, args.Error(1)
}

func (m *MockAdminRepository) FindAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	var admin *domain.Admin
	if args.Get(0) != nil {
		admin = args.Get(0).(*domain.Admin)
	}
	return admin, args.Error(1)
}

func (m *MockAdminRepository) FindAdmins(ctx context.Context) ([]domain.Admin, error) {
	args := m.Called(ctx)
	var admins []domain.Admin
	if args.Get(0) != nil {
		admins = args.Get(0).([]domain.Admin)
	}
	return admins, args.Error(1)
}

func (m *MockAdminRepository) CountAdmins(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAdminRepository) UpdateAdmin(ctx context.Context, admin domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) DeleteAdmin(ctx context.Context, adminID int64) error {
	args := m.Called(ctx, adminID)
	return args.Error(0)
}

// --- Test Suite ---

type AdminServiceTestSuite struct {
	suite.Suite
	mockAdminRepo *MockAdminRepository
	service       portssvc.AdminSvcFacade
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.mockAdminRepo = new(MockAdminRepository)
	suite.service = services.NewAdminService(suite.mockAdminRepo)
}

func (suite *AdminServiceTestSuite) TestCreateAdmin_Success() {
	ctx := context.Background()

	suite.mockAdminRepo.On("CreateAdmin", ctx, mock.MatchedBy(func(admin domain.Admin) bool {
		return admin.Username == "root" &&
			admin.IsProtected &&
			admin.PasswordHash != "secret123" &&
			utils.CheckPasswordHash("secret123", admin.PasswordHash)
	})).Return(&domain.Admin{AdminID: 1, Username: "root", IsProtected: true}, nil).Once()

	created, err := suite.service.CreateAdmin(ctx, "root", "secret123", "Root Admin", true)

	suite.Require().NoError(err)
	suite.Equal(int64(1), created.AdminID)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestDeleteAdmin_Success() {
	ctx := context.Background()
	admin := &domain.Admin{AdminID: 2, Username: "second"}

	suite.mockAdminRepo.On("FindAdminByID", ctx, int64(2)).Return(admin, nil).Once()
	suite.mockAdminRepo.On("CountAdmins", ctx).Return(3, nil).Once()
	suite.mockAdminRepo.On("DeleteAdmin", ctx, int64(2)).Return(nil).Once()

	err := suite.service.DeleteAdmin(ctx, 2)

	suite.Require().NoError(err)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestDeleteAdmin_Protected() {
	ctx := context.Background()
	admin := &domain.Admin{AdminID: 1, Username: "root", IsProtected: true}

	suite.mockAdminRepo.On("FindAdminByID", ctx, int64(1)).Return(admin, nil).Once()

	err := suite.service.DeleteAdmin(ctx, 1)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Contains(err.Error(), "cannot delete a protected admin")
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "DeleteAdmin", mock.Anything, mock.Anything)
}

func (suite *AdminServiceTestSuite) TestDeleteAdmin_LastAdmin() {
	ctx := context.Background()
	admin := &domain.Admin{AdminID: 5, Username: "only"}

	suite.mockAdminRepo.On("FindAdminByID", ctx, int64(5)).Return(admin, nil).Once()
	suite.mockAdminRepo.On("CountAdmins", ctx).Return(1, nil).Once()

	err := suite.service.DeleteAdmin(ctx, 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Contains(err.Error(), "cannot delete the last admin")
	suite.mockAdminRepo.AssertNotCalled(suite.T(), "DeleteAdmin", mock.Anything, mock.Anything)
}

func (suite *AdminServiceTestSuite) TestDeleteAdmin_NotFound() {
	ctx := context.Background()
	suite.mockAdminRepo.On("FindAdminByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAdmin(ctx, 404)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAdminRepo.AssertExpectations(suite.T())
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
