// Package auth implementa registro, login y recuperación de contraseña.
// El login emite el token de sesión con el formato plano auth_<userID>_<ts>
// que esperan los clientes existentes. El token no lleva firma; ver notas de
// seguridad en DESIGN.md.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dgiraldo/stockia-api/internal/application/dto"
	"github.com/dgiraldo/stockia-api/internal/application/ports"
	"github.com/dgiraldo/stockia-api/internal/domain"
	"github.com/dgiraldo/stockia-api/internal/domain/authz"
	"github.com/dgiraldo/stockia-api/internal/domain/entity"
	"github.com/dgiraldo/stockia-api/internal/domain/repository"
	"github.com/dgiraldo/stockia-api/pkg/token"
)

// sessionPrefix primer segmento del token de sesión.
const sessionPrefix = "auth"

// ResetConfig configuración de los tokens de recuperación de contraseña.
type ResetConfig struct {
	Secret string
	TTL    time.Duration
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	hasher    ports.PasswordHasher
	sender    ports.NotificationSender
	resetCfg  ResetConfig
	now       func() time.Time
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	hasher ports.PasswordHasher,
	sender ports.NotificationSender,
	resetCfg ResetConfig,
) *UseCase {
	return &UseCase{
		userRepo:  userRepo,
		notifRepo: notifRepo,
		hasher:    hasher,
		sender:    sender,
		resetCfg:  resetCfg,
		now:       time.Now,
	}
}

// SessionToken arma el valor de la cookie de sesión para un usuario.
func SessionToken(userID string, issuedAt time.Time) string {
	return fmt.Sprintf("%s_%s_%d", sessionPrefix, userID, issuedAt.UnixMilli())
}

// ParseSessionToken extrae el userID de un token de sesión. Devuelve ("",
// false) si el formato no corresponde: mínimo tres segmentos separados por
// guion bajo y el primero literal "auth". Un token malformado no es un error,
// simplemente no hay sesión.
func ParseSessionToken(tok string) (string, bool) {
	parts := strings.SplitN(tok, "_", 3)
	if len(parts) < 3 || parts[0] != sessionPrefix || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Register crea un usuario: hashea la contraseña y persiste. Devuelve
// ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = string(authz.RoleVendedor)
	}
	if !authz.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/contraseña y devuelve el token de sesión más el
// usuario. Cuenta inactiva devuelve ErrUserInactive (403, no 401).
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}
	return &dto.LoginResponse{
		Token: SessionToken(user.ID, uc.now()),
		User:  *ToUserResponse(user),
	}, nil
}

// ForgotPassword genera un token firmado de recuperación y lo entrega por el
// canal de notificaciones. Para no revelar qué emails existen, un email
// desconocido no es error.
func (uc *UseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive() {
		return nil
	}
	resetTok, err := token.GenerateReset(uc.resetCfg.Secret, user.ID, uc.resetCfg.TTL)
	if err != nil {
		return err
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Type:      entity.NotificationTypePasswordReset,
		Title:     "Recuperación de contraseña",
		Message:   "Token de recuperación: " + resetTok,
		CreatedAt: uc.now(),
	}
	if err := uc.notifRepo.Create(ctx, n); err != nil {
		return err
	}
	return uc.sender.Send(ctx, n)
}

// ResetPassword valida el token de recuperación y fija la nueva contraseña.
func (uc *UseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	userID, err := token.ParseReset(uc.resetCfg.Secret, in.Token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

// ToUserResponse convierte la entidad a su representación pública, incluyendo
// el vector de permisos del rol para pintar la UI.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	perms := authz.RolePermissions(authz.Role(u.Role))
	permStrs := make([]string, len(perms))
	for i, p := range perms {
		permStrs[i] = string(p)
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		Permissions: permStrs,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
