package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/internal/service/tokens"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
)

const JWTTokenExpire = 24 * time.Hour

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	wallets        *WalletService
	hasher         PasswordHasher
	jwtTokenSecret []byte
}

func NewUserService(
	u uow.UOW,
	wallets *WalletService,
	hasher PasswordHasher,
	jwtTokenSecret []byte,
) (*UserService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		wallets:        wallets,
		hasher:         hasher,
		jwtTokenSecret: jwtTokenSecret,
	}, nil
}

type RegisterUserArgs struct {
	Username string
	Password string
}

// Register создает юзера и открывает ему кошелек со стартовым балансом в одной транзакции.
// После успешного создания генерирует jwt token. Возвращает 3 значения: созданный юзер, токен и ошибку.
// Если юзернейм занят, возвращает domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	user, err := s.create(ctx, args.Username, args.Password, domain.RoleUser)
	if err != nil {
		return nil, "", fmt.Errorf("registering user: %w", err)
	}
	token, err := tokens.GenerateUserJWT(user.ID, user.Role, JWTTokenExpire, s.jwtTokenSecret)
	if err != nil {
		return nil, "", fmt.Errorf("registering user: %w", err)
	}
	return user, token, nil
}

type LoginUserArgs struct {
	Username string
	Password string
}

// Login проверяет пароль и выдает jwt token. Возвращает domain.ErrRecordNotFound если юзера нет
// и domain.ErrPasswordMissMatch если пароль не подходит.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, args.Username)
	if err != nil {
		return nil, "", fmt.Errorf("login user: %w", err)
	}
	if !s.hasher.ComparePassword(args.Password, user.Password) {
		return nil, "", fmt.Errorf("login user: %w", domain.ErrPasswordMissMatch)
	}
	token, err := tokens.GenerateUserJWT(user.ID, user.Role, JWTTokenExpire, s.jwtTokenSecret)
	if err != nil {
		return nil, "", fmt.Errorf("login user: %w", err)
	}
	return user, token, nil
}

// EnsureAdmin создает администратора, если юзернейм еще свободен. Существующий юзер не изменяется.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.create(ctx, username, password, domain.RoleAdmin)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrDuplicateKey) {
		return nil, fmt.Errorf("ensuring admin: %w", err)
	}
	existing, findErr := s.userRepo.FindUserByUsername(ctx, username)
	if findErr != nil {
		return nil, fmt.Errorf("ensuring admin: %w", findErr)
	}
	return existing, nil
}

func (s *UserService) create(
	ctx context.Context,
	username, password string,
	role domain.RoleType,
) (*domain.User, error) {
	hashed, hashErr := s.hasher.HashPassword(password)
	if hashErr != nil {
		return nil, hashErr //nolint:wrapcheck
	}

	var user *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, err := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		user, err = userRepo.CreateUser(c, repoargs.CreateUser{
			Username: username,
			Password: hashed,
			Role:     role,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		_, err = s.wallets.Open(c, tx, user.ID)
		return err
	})
	if txErr != nil {
		return nil, txErr //nolint:wrapcheck
	}
	return user, nil
}
