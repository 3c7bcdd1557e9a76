package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"post-board/internal/domain"
	"post-board/internal/repository"
)

// 注册时的格式规则：用户名 4-10 位小写字母/数字，密码 8-15 位大小写字母/数字。
var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9]{4,10}$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9]{8,15}$`)
)

// AuthService 负责用户注册和登录相关的业务逻辑。
type AuthService struct {
	userRepo repository.UserRepository
	codec    *TokenCodec
}

// NewAuthService 创建 AuthService 实例。
func NewAuthService(userRepo repository.UserRepository, codec *TokenCodec) *AuthService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if codec == nil {
		panic("TokenCodec cannot be nil for AuthService")
	}
	return &AuthService{userRepo: userRepo, codec: codec}
}

// Signup 处理用户注册。
func (s *AuthService) Signup(ctx context.Context, username, password string) error {
	logCtx := logrus.WithField("username", username)

	// 1. 格式验证
	if !usernamePattern.MatchString(username) {
		logCtx.Warn("Signup failed: Invalid username format")
		return ErrInvalidUsernameFormat
	}
	if !passwordPattern.MatchString(password) {
		logCtx.Warn("Signup failed: Invalid password format")
		return ErrInvalidPasswordFormat
	}

	// 2. 会员重复确认
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		logCtx.Warn("Signup failed: Username already exists")
		return ErrDuplicateUser
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		logCtx.WithError(err).Error("Database error checking username uniqueness")
		return ErrInternalServer
	}

	// 3. 哈希密码（绝不明文存储）
	hashedPassword, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during signup")
		return ErrInternalServer
	}

	// 4. 保存用户
	user := &domain.User{
		Username: username,
		Password: hashedPassword,
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		// 并发注册可能绕过上面的预检查，唯一约束兜底
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Signup failed: Username already exists (repo error)")
			return ErrDuplicateUser
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return ErrInternalServer
	}

	logCtx.Info("User signed up successfully")
	return nil
}

// Login 处理用户登录，成功时返回签发的 token。
// 用户不存在与密码不符返回不同的错误（与源系统行为一致）。
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	// 1. 查找用户
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: User not found")
			return "", ErrUserNotFound
		}
		logCtx.WithError(err).Error("Database error finding user during login")
		return "", ErrInternalServer
	}
	// 防御性检查，以防仓库实现返回 nil, nil
	if user == nil {
		logCtx.Warn("Login attempt failed: Repository returned nil user without error")
		return "", ErrUserNotFound
	}

	// 2. 验证密码
	if !checkPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: Invalid password")
		return "", ErrWrongPassword
	}

	// 3. 签发 JWT Token
	token, err := s.codec.Issue(user.Username)
	if err != nil {
		logCtx.WithError(err).Error("Failed to issue token during login")
		return "", ErrInternalServer
	}

	logCtx.Info("User logged in successfully")
	return token, nil
}

// hashPassword 使用 bcrypt 对密码进行哈希处理
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword 验证提供的密码是否与存储的哈希匹配（比较本身是常数时间的）
func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
