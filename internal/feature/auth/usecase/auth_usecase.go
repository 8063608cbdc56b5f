package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/feature/auth/domain/entity"
	jwtmw "storefront/internal/platform/jwt"
)

// dummyHash は存在しないユーザーのログイン時にも比較処理を行うためのハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。使用済みのメールアドレスは ErrEmailAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail はメールアドレスでユーザーを取得します。存在しない場合は ErrUserNotFound を返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はIDでユーザーを取得します。存在しない場合は ErrUserNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator はJWTトークン生成のインターフェースを定義します。
type TokenGenerator interface {
	GenerateToken(id jwtmw.Identity) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{users: users, tokens: tokens}
}

// NormalizeEmail は保存や検索の前にメールアドレスを小文字化し、前後の空白を除きます。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup はユーザーを登録し、新しいアカウントのトークンを返します。
func (u *authUsecase) Signup(ctx context.Context, name, email, password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	email = NormalizeEmail(email)

	switch _, err := u.users.FindByEmail(ctx, email); {
	case err == nil:
		return "", ErrEmailAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: strings.TrimSpace(name), Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}
	return u.issue(jwtmw.Identity{UserID: user.ID, Email: user.Email})
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// ユーザーが存在しない場合でもbcrypt比較を実行し、応答時間を揃えます。
// 未登録(ErrUserNotFound)とパスワード不一致(ErrInvalidPassword)は区別して返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if user == nil {
		return "", ErrUserNotFound
	}
	if compareErr != nil {
		return "", ErrInvalidPassword
	}
	return u.issue(jwtmw.Identity{UserID: user.ID, Email: user.Email})
}

// Profile はユーザーを再取得し、名前を含む新しいトークンと一緒に返します。
func (u *authUsecase) Profile(ctx context.Context, userID uint) (*entity.User, string, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	token, err := u.issue(jwtmw.Identity{UserID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *authUsecase) issue(id jwtmw.Identity) (string, error) {
	token, err := u.tokens.GenerateToken(id)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
