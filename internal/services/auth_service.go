package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/you/ordersvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	accountRepo   domain.AccountRepository
	passwordSvc   domain.PasswordService
	tokenSvc      domain.TokenService
	revocations   domain.RevocationStore
	accessSvc     domain.AccessService
	notifier      domain.Notifier
	resetTokenTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	revocations domain.RevocationStore,
	accessSvc domain.AccessService,
	notifier domain.Notifier,
	resetTokenTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		accountRepo:   accountRepo,
		passwordSvc:   passwordSvc,
		tokenSvc:      tokenSvc,
		revocations:   revocations,
		accessSvc:     accessSvc,
		notifier:      notifier,
		resetTokenTTL: resetTokenTTL,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, role string, account *domain.Account, password string) (*domain.Account, error) {
	// Check if an account already exists under this role
	existing, err := s.accountRepo.FindByEmail(ctx, role, account.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account.Role = role
	account.PasswordHash = hashedPassword
	account.IsActive = true
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	welcome := domain.NewEvent(domain.WelcomeEvent)
	welcome.Email = account.Email
	welcome.Name = account.Name
	s.notifier.Enqueue(welcome)

	return account, nil
}

// Login implements domain.AuthService. Failed attempts count toward a lockout;
// the response never distinguishes a missing account, a deactivated one, or a
// wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, role, email, password string) (*domain.AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, role, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if account.IsLocked() {
		return nil, domain.ErrAccountLocked
	}

	if !account.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		account.LoginAttempts++
		if account.LoginAttempts >= domain.MaxLoginAttempts {
			until := time.Now().Add(domain.LockDuration)
			account.LockUntil = &until
			account.LoginAttempts = 0
		}
		if updateErr := s.accountRepo.Update(ctx, account); updateErr != nil {
			return nil, fmt.Errorf("failed to record login attempt: %w", updateErr)
		}
		return nil, domain.ErrInvalidCredentials
	}

	// Success clears the lockout state.
	now := time.Now()
	account.LoginAttempts = 0
	account.LockUntil = nil
	account.LastLogin = &now
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, expiresIn, err := s.tokenSvc.Generate(account.ID, account.Role, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	result := &domain.AuthResult{
		Account:   account,
		Token:     token,
		ExpiresIn: expiresIn,
	}

	if role == domain.RoleMultiVendorAdmin {
		scope, err := s.accessSvc.ResolveVendorScope(ctx, account.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve vendor scope: %w", err)
		}
		result.VendorScope = scope
	}

	return result, nil
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, role string, accountID uint, current, next string) error {
	account, err := s.accountRepo.FindByID(ctx, role, accountID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(account.PasswordHash, current) {
		return domain.ErrInvalidCredentials
	}

	hashed, err := s.passwordSvc.Hash(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account.PasswordHash = hashed
	return s.accountRepo.Update(ctx, account)
}

// ForgotPassword implements domain.AuthService. Always succeeds from the
// caller's point of view so addresses cannot be enumerated.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, role, email string) error {
	account, err := s.accountRepo.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	rawToken, err := randomToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	// Only the digest is stored; the raw token travels by email.
	account.ResetTokenHash = hashToken(rawToken)
	expiry := time.Now().Add(s.resetTokenTTL)
	account.ResetTokenExpiry = &expiry
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	reset := domain.NewEvent(domain.PasswordResetEvent)
	reset.Email = account.Email
	reset.Name = account.Name
	reset.ResetToken = rawToken
	reset.ExpiresAt = &expiry
	s.notifier.Enqueue(reset)

	return nil
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, role, token, password string) error {
	account, err := s.accountRepo.FindByResetTokenHash(ctx, role, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrTokenInvalid
		}
		return err
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// The token is single use and a successful reset clears any lockout.
	account.PasswordHash = hashed
	account.ResetTokenHash = ""
	account.ResetTokenExpiry = nil
	account.LoginAttempts = 0
	account.LockUntil = nil

	return s.accountRepo.Update(ctx, account)
}

// Logout implements domain.AuthService. The token stays dead under its role
// until its own expiry.
func (s *AuthServiceImpl) Logout(ctx context.Context, token, role string) error {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		// An invalid or expired token has nothing to revoke.
		return nil
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	return s.revocations.Add(ctx, token, role, ttl)
}

// Verify implements domain.AuthService
func (s *AuthServiceImpl) Verify(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.Contains(ctx, token, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	account, err := s.accountRepo.FindByID(ctx, claims.Role, claims.AccountID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if !account.IsActive {
		return nil, domain.ErrAccountInactive
	}

	return claims, nil
}

// randomToken returns n random bytes as lowercase hex.
func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashToken is the stored form of a reset token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
