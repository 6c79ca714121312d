package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
	"github.com/jhoicas/terraflow-api/pkg/jwt"
	"github.com/jhoicas/terraflow-api/pkg/logger"
	"github.com/jhoicas/terraflow-api/pkg/password"
)

// Mensajes de login. MsgInvalidCredentials es el mismo para email inexistente y password incorrecto.
const (
	MsgMissingCredentials = "Email and password are required"
	MsgInvalidCredentials = "Invalid email or password"
	MsgAccountDisabled    = "Account is disabled"
	MsgEmailExists        = "Email already exists"
	MsgStorageMissing     = "Database tables not found. Please run database setup."
	MsgRegistered         = "Registration successful"
	MsgLoggedIn           = "Login successful"
)

// Credencial fija heredada del sistema anterior. Solo se evalúa con LegacyAdminBypass activo
// y tiene precedencia sobre cualquier cuenta del store con el mismo email.
const (
	LegacyAdminEmail    = "admin@terraflow.com"
	LegacyAdminPassword = "admin123"
	LegacyAdminID       = int64(1)
	LegacyAdminName     = "Administrator"
)

// DefaultQueryTimeout límite por ida y vuelta al store si no se configura otro.
const DefaultQueryTimeout = 10 * time.Second

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config políticas del caso de uso.
type Config struct {
	JWT               JWTConfig
	QueryTimeout      time.Duration
	LegacyAdminBypass bool
	EnforceActive     bool
}

// AuthUseCase casos de uso de autenticación: registro, login y provisión de admin.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	hasher    *password.Hasher
	cfg       Config
	log       *logger.Logger
	dummyHash string // para igualar el costo de login cuando el email no existe
}

// NewAuthUseCase construye el caso de uso de auth. Calcula un hash de referencia con el costo configurado.
func NewAuthUseCase(userRepo repository.UserRepository, hasher *password.Hasher, cfg Config, log *logger.Logger) *AuthUseCase {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	dummy, _ := hasher.Hash("terraflow-dummy-password")
	return &AuthUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		cfg:       cfg,
		log:       log.Named("auth"),
		dummyHash: dummy,
	}
}

// Register valida, hashea y persiste una cuenta customer o supplier. Devuelve el ID asignado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (int64, error) {
	user, err := buildAccount(in)
	if err != nil {
		return 0, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return 0, domain.Validation(MsgPasswordTooLong)
		}
		return 0, domain.Infrastructure("Server error: "+err.Error(), err)
	}
	user.PasswordHash = hash

	if err := uc.create(ctx, user); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Str("role", user.Role).Msg("registro rechazado")
		return 0, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("registro exitoso")
	return user.ID, nil
}

// Login verifica credenciales y devuelve la proyección sanitizada más un JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.Validation(MsgMissingCredentials)
	}

	if uc.cfg.LegacyAdminBypass && in.Email == LegacyAdminEmail && in.Password == LegacyAdminPassword {
		uc.log.Warn().Msg("login con credencial fija de administrador")
		return uc.session(&entity.User{
			ID:       LegacyAdminID,
			Email:    LegacyAdminEmail,
			Role:     entity.RoleAdmin,
			FullName: LegacyAdminName,
			IsActive: true,
		})
	}

	email := NormalizeEmail(in.Email)
	qctx, cancel := context.WithTimeout(ctx, uc.cfg.QueryTimeout)
	user, err := uc.userRepo.FindByEmail(qctx, email)
	cancel()
	if err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("login: consulta de usuario")
		return nil, storeError(err)
	}
	if user == nil {
		_ = uc.hasher.Compare(uc.dummyHash, in.Password)
		return nil, domain.Auth(MsgInvalidCredentials)
	}
	if err := uc.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			uc.log.Error().Err(err).Int64("user_id", user.ID).Msg("login: hash almacenado inválido")
		}
		return nil, domain.Auth(MsgInvalidCredentials)
	}
	if uc.cfg.EnforceActive && !user.IsActive {
		return nil, domain.Forbidden(MsgAccountDisabled)
	}
	return uc.session(user)
}

// EnsureAdmin crea una cuenta admin con el mismo hashing que el resto si el email no existe.
// Devuelve true si la creó. Una cuenta existente con ese email no se modifica.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, plain, fullName string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || plain == "" {
		return false, domain.Validation(MsgMissingFields)
	}
	if fullName == "" {
		fullName = LegacyAdminName
	}

	qctx, cancel := context.WithTimeout(ctx, uc.cfg.QueryTimeout)
	existing, err := uc.userRepo.FindByEmail(qctx, email)
	cancel()
	if err != nil {
		return false, storeError(err)
	}
	if existing != nil {
		if existing.Role != entity.RoleAdmin {
			uc.log.Warn().Str("email", email).Str("role", existing.Role).Msg("seed admin: el email pertenece a otra cuenta")
		}
		return false, nil
	}

	hash, err := uc.hasher.Hash(plain)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return false, domain.Validation(MsgPasswordTooLong)
		}
		return false, domain.Infrastructure("Server error: "+err.Error(), err)
	}
	admin := &entity.User{
		Role:         entity.RoleAdmin,
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := uc.create(ctx, admin); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return false, nil // otra instancia lo creó primero
		}
		return false, err
	}
	uc.log.Info().Int64("user_id", admin.ID).Str("email", email).Msg("cuenta admin provisionada")
	return true, nil
}

// create inserta con timeout y traduce los errores del store.
func (uc *AuthUseCase) create(ctx context.Context, user *entity.User) error {
	qctx, cancel := context.WithTimeout(ctx, uc.cfg.QueryTimeout)
	defer cancel()
	err := uc.userRepo.Create(qctx, user)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return domain.Conflict(MsgEmailExists, err)
	}
	return storeError(err)
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.cfg.JWT.Secret, user.ID, user.Email, user.Role, uc.cfg.JWT.Issuer, uc.cfg.JWT.ExpMinutes)
	if err != nil {
		return nil, domain.Infrastructure("Server error: token generation failed", err)
	}
	return &dto.LoginResponse{
		Success: true,
		Message: MsgLoggedIn,
		User: dto.SessionUser{
			ID:       user.ID,
			Email:    user.Email,
			Role:     user.Role,
			FullName: user.FullName,
			Username: user.FullName,
		},
		Token: token,
	}, nil
}

// storeError traduce fallos del store a InfrastructureError.
func storeError(err error) error {
	switch {
	case errors.Is(err, domain.ErrStorageNotInitialized):
		return domain.Infrastructure(MsgStorageMissing, err)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.Infrastructure("Database error: timeout", err)
	default:
		return domain.Infrastructure("Database error: "+err.Error(), err)
	}
}
