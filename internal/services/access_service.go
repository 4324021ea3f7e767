package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/you/ordersvc/domain"
)

// AccessServiceImpl implements domain.AccessService. Grants are addressed by
// email because the grantee may not have registered yet; the one-time token on
// a pending grant doubles as a registration invite.
type AccessServiceImpl struct {
	grantRepo   domain.GrantRepository
	accountRepo domain.AccountRepository
	passwordSvc domain.PasswordService
	notifier    domain.Notifier
	inviteBase  string
}

// NewAccessService creates a new access service
func NewAccessService(
	grantRepo domain.GrantRepository,
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	notifier domain.Notifier,
	inviteBase string,
) domain.AccessService {
	return &AccessServiceImpl{
		grantRepo:   grantRepo,
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
		notifier:    notifier,
		inviteBase:  inviteBase,
	}
}

// Grant implements domain.AccessService. A revoked grant for the same grantee
// is reactivated in place with a fresh token rather than duplicated; a live or
// pending one is a conflict.
func (s *AccessServiceImpl) Grant(ctx context.Context, vendorID uint, email, name string, expiresAt *time.Time, notes string) (*domain.AccessGrant, error) {
	email = strings.ToLower(email)

	token, err := randomToken(24)
	if err != nil {
		return nil, fmt.Errorf("failed to generate grant token: %w", err)
	}

	existing, err := s.grantRepo.FindByVendorAndEmail(ctx, vendorID, email)
	if err != nil && !errors.Is(err, domain.ErrGrantNotFound) {
		return nil, err
	}

	var grant *domain.AccessGrant
	if existing != nil {
		if existing.Status != domain.GrantStatusRevoked {
			return nil, domain.ErrGrantExists
		}
		existing.Status = domain.GrantStatusPending
		existing.AccessToken = token
		existing.UserName = name
		existing.InvitedAt = time.Now()
		existing.AcceptedAt = nil
		existing.ExpiresAt = expiresAt
		existing.Notes = notes
		if err := s.grantRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		grant = existing
	} else {
		grant = &domain.AccessGrant{
			VendorID:    vendorID,
			UserEmail:   email,
			UserName:    name,
			AccessType:  domain.AccessTypeAdmin,
			AccessToken: token,
			Status:      domain.GrantStatusPending,
			InvitedAt:   time.Now(),
			ExpiresAt:   expiresAt,
			Notes:       notes,
		}
		if err := s.grantRepo.Create(ctx, grant); err != nil {
			return nil, err
		}
	}

	vendorName := ""
	if vendor, err := s.accountRepo.FindByID(ctx, domain.RoleVendor, vendorID); err == nil {
		vendorName = vendor.Name
	}

	invite := domain.NewEvent(domain.AccessInviteEvent)
	invite.Email = email
	invite.Name = name
	invite.VendorName = vendorName
	invite.InviteLink = fmt.Sprintf("%s/admin-access/accept?token=%s", s.inviteBase, token)
	invite.ExpiresAt = expiresAt
	invite.Notes = notes
	if !s.notifier.Enqueue(invite) {
		// The grant stands either way. The caller decides how to tell
		// the admin the invitation email did not go out.
		return grant, domain.ErrInviteNotSent
	}

	return grant, nil
}

// VerifyToken implements domain.AccessService. Read-only: the token survives
// verification and dies on redemption.
func (s *AccessServiceImpl) VerifyToken(ctx context.Context, token string) (*domain.AccessGrant, error) {
	if token == "" {
		return nil, domain.ErrGrantNotFound
	}

	grant, err := s.grantRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if grant.Status == domain.GrantStatusRevoked {
		return nil, domain.ErrGrantRevoked
	}
	if grant.ExpiresAt != nil && grant.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrGrantExpired
	}

	return grant, nil
}

// RedeemToken implements domain.AccessService. Registers the grantee as a
// multi-vendor admin, activates the grant, and burns the token.
func (s *AccessServiceImpl) RedeemToken(ctx context.Context, token, email, password, name string) (*domain.Account, error) {
	grant, err := s.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// The invite is bound to the address it was sent to.
	if !strings.EqualFold(grant.UserEmail, email) {
		return nil, domain.ErrEmailMismatch
	}

	account, err := s.accountRepo.FindByEmail(ctx, domain.RoleMultiVendorAdmin, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		hashed, hashErr := s.passwordSvc.Hash(password)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}
		account = &domain.Account{
			Role:         domain.RoleMultiVendorAdmin,
			Name:         name,
			Email:        strings.ToLower(email),
			PasswordHash: hashed,
			IsActive:     true,
			CreatedAt:    time.Now(),
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	now := time.Now()
	grant.Status = domain.GrantStatusActive
	grant.AcceptedAt = &now
	grant.AccessToken = ""
	if err := s.grantRepo.Update(ctx, grant); err != nil {
		return nil, err
	}

	return account, nil
}

// Accept implements domain.AccessService. Lets an already registered admin
// accept a pending grant without going through the token flow.
func (s *AccessServiceImpl) Accept(ctx context.Context, grantID uint, email string) (*domain.AccessGrant, error) {
	grant, err := s.grantRepo.FindByID(ctx, grantID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(grant.UserEmail, email) {
		return nil, domain.ErrEmailMismatch
	}
	if grant.Status == domain.GrantStatusRevoked {
		return nil, domain.ErrGrantRevoked
	}
	if grant.ExpiresAt != nil && grant.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrGrantExpired
	}

	if grant.Status == domain.GrantStatusPending {
		now := time.Now()
		grant.Status = domain.GrantStatusActive
		grant.AcceptedAt = &now
		grant.AccessToken = ""
		if err := s.grantRepo.Update(ctx, grant); err != nil {
			return nil, err
		}
	}

	return grant, nil
}

// Revoke implements domain.AccessService. Idempotent: revoking a revoked
// grant succeeds. Only the granting vendor may revoke.
func (s *AccessServiceImpl) Revoke(ctx context.Context, grantID, byVendorID uint) error {
	grant, err := s.grantRepo.FindByID(ctx, grantID)
	if err != nil {
		return err
	}

	if grant.VendorID != byVendorID {
		return domain.ErrNotGrantOwner
	}

	if grant.Status == domain.GrantStatusRevoked {
		return nil
	}

	grant.Status = domain.GrantStatusRevoked
	grant.AccessToken = ""
	return s.grantRepo.Update(ctx, grant)
}

// ListForVendor implements domain.AccessService
func (s *AccessServiceImpl) ListForVendor(ctx context.Context, vendorID uint) ([]*domain.AccessGrant, error) {
	return s.grantRepo.ListByVendor(ctx, vendorID)
}

// ResolveVendorScope implements domain.AccessService. Called at login: pending
// grants for the authenticated address are promoted to active, and the live
// set of vendor ids comes back as the session's scope.
func (s *AccessServiceImpl) ResolveVendorScope(ctx context.Context, email string) ([]uint, error) {
	grants, err := s.grantRepo.ListByEmail(ctx, email, []string{domain.GrantStatusPending, domain.GrantStatusActive})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	live := make([]*domain.AccessGrant, 0, len(grants))
	for _, grant := range grants {
		if grant.ExpiresAt != nil && grant.ExpiresAt.Before(now) {
			continue
		}
		if grant.Status == domain.GrantStatusPending {
			grant.Status = domain.GrantStatusActive
			accepted := now
			grant.AcceptedAt = &accepted
			grant.AccessToken = ""
		}
		grant.LastAccessedAt = &now
		if err := s.grantRepo.Update(ctx, grant); err != nil {
			return nil, err
		}
		live = append(live, grant)
	}

	return lo.Uniq(lo.Map(live, func(g *domain.AccessGrant, _ int) uint {
		return g.VendorID
	})), nil
}
