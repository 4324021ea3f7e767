package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/http/middleware"
	"github.com/you/ordersvc/internal/mocks"
)

func TestAccessHandlers_Grant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	pendingGrant := &domain.AccessGrant{
		ID:          3,
		VendorID:    7,
		UserEmail:   "admin@example.test",
		UserName:    "Admin",
		AccessType:  domain.AccessTypeAdmin,
		AccessToken: "tok",
		Status:      domain.GrantStatusPending,
		InvitedAt:   time.Now(),
	}

	tests := []struct {
		name            string
		setupMocks      func(*mocks.MockAccessService)
		expectedStatus  int
		expectedSuccess bool
		expectedWarning string
	}{
		{
			name: "grant with invite sent",
			setupMocks: func(svc *mocks.MockAccessService) {
				svc.GrantFunc = func(ctx context.Context, vendorID uint, email, name string, expiresAt *time.Time, notes string) (*domain.AccessGrant, error) {
					return pendingGrant, nil
				}
			},
			expectedStatus:  http.StatusCreated,
			expectedSuccess: true,
		},
		{
			// A dropped invite email still creates the grant; the envelope
			// carries a warning so the admin knows to resend.
			name: "grant with dropped invite",
			setupMocks: func(svc *mocks.MockAccessService) {
				svc.GrantFunc = func(ctx context.Context, vendorID uint, email, name string, expiresAt *time.Time, notes string) (*domain.AccessGrant, error) {
					return pendingGrant, domain.ErrInviteNotSent
				}
			},
			expectedStatus:  http.StatusCreated,
			expectedSuccess: true,
			expectedWarning: "Invitation email could not be queued, resend it or share the link manually",
		},
		{
			name: "duplicate grant",
			setupMocks: func(svc *mocks.MockAccessService) {
				svc.GrantFunc = func(ctx context.Context, vendorID uint, email, name string, expiresAt *time.Time, notes string) (*domain.AccessGrant, error) {
					return nil, domain.ErrGrantExists
				}
			},
			expectedStatus:  http.StatusConflict,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accessSvc := mocks.NewMockAccessService()
			tt.setupMocks(accessSvc)
			h := NewAccessHandlers(accessSvc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set(middleware.CtxAccountID, uint(7))
			c.Request = postJSON(t, GrantRequest{Email: "admin@example.test", Name: "Admin"})

			h.Grant(c)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			body := decodeBody(t, w)
			if body["success"] != tt.expectedSuccess {
				t.Errorf("expected success=%v, got %v", tt.expectedSuccess, body["success"])
			}
			warning, _ := body["warning"].(string)
			if warning != tt.expectedWarning {
				t.Errorf("expected warning %q, got %q", tt.expectedWarning, warning)
			}
		})
	}
}
