package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "github.com/Sedmeq/WorkTrack/internal/auth/errors"
	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultTokenTTL = 24 * time.Hour

// TokenConfig controls how login tokens are signed.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// TokenConfigFromEnv reads JWT_SECRET, the same variable AuthMiddleware verifies with.
func TokenConfigFromEnv() TokenConfig {
	return TokenConfig{Secret: os.Getenv("JWT_SECRET"), TTL: DefaultTokenTTL}
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (string, error)
	Me(ctx context.Context, employeeID string) (MeResponse, error)
}

type service struct {
	repo   Repository
	cfg    TokenConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, cfg TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	return &service{repo: repo, cfg: cfg, now: time.Now, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	email := strings.TrimSpace(req.Email)
	log.Debug("register requested", zap.String("email", email))

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		log.Error("register email lookup failed", zap.Error(err))
		return RegisterResponse{}, err
	}
	if exists {
		log.Warn("register email taken", zap.String("email", email))
		return RegisterResponse{}, autherrors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("register hash password failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	account := &Account{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return RegisterResponse{}, autherrors.ErrEmailAlreadyExists
		}
		log.Error("register persist failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	log.Info("register success", zap.String("employee_id", account.ID.String()))
	return RegisterResponse{
		ID:       account.ID.String(),
		Username: account.Username,
		Email:    account.Email,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	account, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("login lookup failed", zap.Error(err))
			return "", err
		}
		return "", autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("login password mismatch", zap.String("employee_id", account.ID.String()))
		return "", autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", err
	}
	log.Info("login success", zap.String("employee_id", account.ID.String()))
	return token, nil
}

func (s *service) Me(ctx context.Context, employeeID string) (MeResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return MeResponse{}, autherrors.ErrInvalidEmployeeID
	}
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, autherrors.ErrUnknownActor
		}
		return MeResponse{}, err
	}
	return MeResponse{ID: account.ID.String(), Username: account.Username, Email: account.Email}, nil
}

func (s *service) generateToken(account *Account) (string, error) {
	if s.cfg.Secret == "" {
		return "", autherrors.ErrMissingSecret
	}
	claims := jwt.MapClaims{
		"employee_id": account.ID.String(),
		"name":        account.Username,
		"exp":         s.now().Add(s.cfg.TTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return signed, nil
}
