package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"post-board/internal/domain"
	"post-board/internal/repository"
	"post-board/internal/repository/mocks"
	"post-board/internal/service"
)

func newAuthService(t *testing.T, userRepo *mocks.UserRepository) *service.AuthService {
	t.Helper()
	codec, err := service.NewTokenCodec("test-secret", 60)
	require.NoError(t, err, "创建 TokenCodec 不应失败")
	return service.NewAuthService(userRepo, codec)
}

// --- 测试 Signup 方法 ---

func TestAuthService_Signup_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService := newAuthService(t, mockUserRepo)
	ctx := context.Background()
	username := "abcd12"
	password := "Password1"

	// 设置 Mock 预期:
	// 1. FindByUsername 找不到用户（用户名可用）
	mockUserRepo.On("FindByUsername", ctx, username).
		Return(nil, repository.ErrUserNotFound).
		Once()
	// 2. Save 被调用时验证存储的是哈希而非明文
	mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
		assert.Equal(t, username, user.Username)
		assert.NotEqual(t, password, user.Password, "密码绝不能明文存储")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)), "密码应被正确哈希")
		return true
	})).Return(nil).Once()

	// Act
	err := authService.Signup(ctx, username, password)

	// Assert
	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Signup_InvalidUsernameFormat(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := newAuthService(t, mockUserRepo)
	ctx := context.Background()

	// 用户名过短 (3 字符)、含大写、过长，均应被拒绝
	for _, username := range []string{"ab1", "Abcd12", "abcdefghij1"} {
		err := authService.Signup(ctx, username, "Password1")
		require.Error(t, err, "用户名 %q 应被拒绝", username)
		assert.ErrorIs(t, err, service.ErrInvalidUsernameFormat)
	}

	// 格式失败时不应触达仓库
	mockUserRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_InvalidPasswordFormat(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := newAuthService(t, mockUserRepo)
	ctx := context.Background()

	// 密码过短 (6 字符)、含特殊字符，均应被拒绝
	for _, password := range []string{"short1", "pass word12", "p@ssword1"} {
		err := authService.Signup(ctx, "abcd12", password)
		require.Error(t, err, "密码 %q 应被拒绝", password)
		assert.ErrorIs(t, err, service.ErrInvalidPasswordFormat)
	}

	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_DuplicateUser(t *testing.T) {
	// Arrange: FindByUsername 找到已存在的用户
	mockUserRepo := new(mocks.UserRepository)
	authService := newAuthService(t, mockUserRepo)
	ctx := context.Background()
	username := "abcd12"

	existing := &domain.User{Username: username}
	mockUserRepo.On("FindByUsername", ctx, username).Return(existing, nil).Once()

	// Act
	err := authService.Signup(ctx, username, "Password1")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrDuplicateUser)
	mockUserRepo.AssertExpectations(t)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_SaveFails_DuplicateEntry(t *testing.T) {
	// Arrange: 预检查通过但并发注册触发唯一约束
	mockUserRepo := new(mocks.UserRepository)
	authService := newAuthService(t, mockUserRepo)
	ctx := context.Background()
	username := "abcd12"

	mockUserRepo.On("FindByUsername", ctx, username).Return(nil, repository.ErrUserNotFound).Once()
	mockUserRepo.On("Save", ctx, mock.AnythingOfType("*domain.User")).Return(repository.ErrDuplicateEntry).Once()

	// Act
	err := authService.Signup(ctx, username, "Password1")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrDuplicateUser)
	mockUserRepo.AssertExpectations(t)
}

// --- 测试 Login 方法 ---

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	codec, err := service.NewTokenCodec("test-secret", 60)
	require.NoError(t, err)
	authService := service.NewAuthService(mockUserRepo, codec)
	ctx := context.Background()
	username := "abcd12"
	password := "Password1"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userInDb := &domain.User{Username: username, Password: string(hashedPassword)}

	mockUserRepo.On("FindByUsername", ctx, username).Return(userInDb, nil).Once()

	// Act
	token, err := authService.Login(ctx, username, password)

	// Assert: 签发的 token 非空且 subject 为登录用户名
	assert.NoError(t, err)
	require.NotEmpty(t, token)
	subject, err := codec.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, username, subject)

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService := newAuthService(t, mockUserRepo)
	ctx := context.Background()
	username := "nosuchuser"

	mockUserRepo.On("FindByUsername", ctx, username).Return(nil, repository.ErrUserNotFound).Once()

	// Act
	token, err := authService.Login(ctx, username, "Password1")

	// Assert
	require.Error(t, err)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService := newAuthService(t, mockUserRepo)
	ctx := context.Background()
	username := "abcd12"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	userInDb := &domain.User{Username: username, Password: string(hashedPassword)}

	mockUserRepo.On("FindByUsername", ctx, username).Return(userInDb, nil).Once()

	// Act
	token, err := authService.Login(ctx, username, "WrongPass1")

	// Assert: 密码不符与用户不存在是不同的错误
	require.Error(t, err)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, service.ErrWrongPassword)
	mockUserRepo.AssertExpectations(t)
}
