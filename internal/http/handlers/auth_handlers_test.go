package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/mocks"
)

func postJSON(t *testing.T, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	return body
}

func TestAuthHandlers_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		role            string
		requestBody     LoginRequest
		setupMocks      func(*mocks.MockAuthService)
		expectedStatus  int
		expectedSuccess bool
		checkData       func(t *testing.T, data map[string]interface{})
	}{
		{
			name: "successful vendor login",
			role: domain.RoleVendor,
			requestBody: LoginRequest{
				Email:    "taqueria@example.com",
				Password: "password123",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, role, email, password string) (*domain.AuthResult, error) {
					if role != domain.RoleVendor {
						t.Errorf("expected role %q, got %q", domain.RoleVendor, role)
					}
					return &domain.AuthResult{
						Account:   &domain.Account{ID: 7, Role: role, Name: "Taqueria", Email: email},
						Token:     "signed.jwt.token",
						ExpiresIn: 3600,
					}, nil
				}
			},
			expectedStatus:  http.StatusOK,
			expectedSuccess: true,
			checkData: func(t *testing.T, data map[string]interface{}) {
				if data["token"] != "signed.jwt.token" {
					t.Errorf("expected token in response, got %v", data["token"])
				}
				if _, ok := data["vendorScope"]; ok {
					t.Error("vendor login must not carry a vendor scope")
				}
			},
		},
		{
			name: "multi-vendor login carries scope",
			role: domain.RoleMultiVendorAdmin,
			requestBody: LoginRequest{
				Email:    "ops@example.com",
				Password: "password123",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, role, email, password string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						Account:     &domain.Account{ID: 9, Role: role, Email: email},
						Token:       "signed.jwt.token",
						ExpiresIn:   1800,
						VendorScope: []uint{3, 5},
					}, nil
				}
			},
			expectedStatus:  http.StatusOK,
			expectedSuccess: true,
			checkData: func(t *testing.T, data map[string]interface{}) {
				scope, ok := data["vendorScope"].([]interface{})
				if !ok || len(scope) != 2 {
					t.Errorf("expected vendorScope of 2 ids, got %v", data["vendorScope"])
				}
			},
		},
		{
			name: "wrong password",
			role: domain.RoleVendor,
			requestBody: LoginRequest{
				Email:    "taqueria@example.com",
				Password: "nope",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, role, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedSuccess: false,
		},
		{
			name: "locked account",
			role: domain.RoleVendor,
			requestBody: LoginRequest{
				Email:    "taqueria@example.com",
				Password: "password123",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, role, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrAccountLocked
				}
			},
			expectedStatus:  http.StatusLocked,
			expectedSuccess: false,
		},
		{
			// Deactivated accounts answer like any bad credential.
			name: "inactive account",
			role: domain.RoleCustomer,
			requestBody: LoginRequest{
				Email:    "guest@example.com",
				Password: "password123",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, role, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedSuccess: false,
		},
		{
			name: "missing email rejected before the service",
			role: domain.RoleVendor,
			requestBody: LoginRequest{
				Password: "password123",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, role, email, password string) (*domain.AuthResult, error) {
					t.Error("login must not be called on a failed binding")
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus:  http.StatusBadRequest,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			handler := NewAuthHandlers(authSvc, "code")

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = postJSON(t, tt.requestBody)

			handler.Login(tt.role)(c)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			body := decodeBody(t, w)
			if body["success"] != tt.expectedSuccess {
				t.Errorf("expected success=%v, got %v", tt.expectedSuccess, body["success"])
			}
			if tt.checkData != nil {
				data, _ := body["data"].(map[string]interface{})
				tt.checkData(t, data)
			}
		})
	}
}

func TestAuthHandlers_RegisterVendor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		requestBody     VendorRegisterRequest
		setupMocks      func(*mocks.MockAuthService)
		expectedStatus  int
		expectedSuccess bool
	}{
		{
			name: "successful registration",
			requestBody: VendorRegisterRequest{
				Name:     "Taqueria",
				Email:    "taqueria@example.com",
				Password: "password123",
				Cuisine:  "mexican",
				TaxRate:  8.25,
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, role string, account *domain.Account, password string) (*domain.Account, error) {
					if role != domain.RoleVendor {
						t.Errorf("expected vendor role, got %q", role)
					}
					if account.Vendor == nil || account.Vendor.TaxRate != 8.25 {
						t.Errorf("expected vendor profile with tax rate, got %+v", account.Vendor)
					}
					account.ID = 1
					account.Role = role
					return account, nil
				}
			},
			expectedStatus:  http.StatusCreated,
			expectedSuccess: true,
		},
		{
			name: "duplicate email",
			requestBody: VendorRegisterRequest{
				Name:     "Taqueria",
				Email:    "taqueria@example.com",
				Password: "password123",
			},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, role string, account *domain.Account, password string) (*domain.Account, error) {
					return nil, domain.ErrDuplicateEmail
				}
			},
			expectedStatus:  http.StatusConflict,
			expectedSuccess: false,
		},
		{
			name: "tax rate out of range",
			requestBody: VendorRegisterRequest{
				Name:     "Taqueria",
				Email:    "taqueria@example.com",
				Password: "password123",
				TaxRate:  120,
			},
			setupMocks:      func(authSvc *mocks.MockAuthService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedSuccess: false,
		},
		{
			name: "short password",
			requestBody: VendorRegisterRequest{
				Name:     "Taqueria",
				Email:    "taqueria@example.com",
				Password: "abc",
			},
			setupMocks:      func(authSvc *mocks.MockAuthService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			handler := NewAuthHandlers(authSvc, "code")

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = postJSON(t, tt.requestBody)

			handler.RegisterVendor(c)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			body := decodeBody(t, w)
			if body["success"] != tt.expectedSuccess {
				t.Errorf("expected success=%v, got %v", tt.expectedSuccess, body["success"])
			}
		})
	}
}

func TestAuthHandlers_RegisterAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{name: "correct code", code: "sesame", expectedStatus: http.StatusCreated},
		{name: "wrong code", code: "guess", expectedStatus: http.StatusForbidden},
		{name: "missing code", code: "", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			called := false
			authSvc.RegisterFunc = func(ctx context.Context, role string, account *domain.Account, password string) (*domain.Account, error) {
				called = true
				if role != domain.RoleGeneralAdmin {
					t.Errorf("expected general admin role, got %q", role)
				}
				account.ID = 1
				account.Role = role
				return account, nil
			}
			handler := NewAuthHandlers(authSvc, "sesame")

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = postJSON(t, RegisterRequest{
				Name:      "Admin",
				Email:     "admin@example.com",
				Password:  "password123",
				AdminCode: tt.code,
			})

			handler.RegisterAdmin(c)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus == http.StatusForbidden && called {
				t.Error("register must not run with a bad admin code")
			}
		})
	}
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authSvc := mocks.NewMockAuthService()
	var gotRole, gotEmail string
	authSvc.ForgotPasswordFunc = func(ctx context.Context, role, email string) error {
		gotRole, gotEmail = role, email
		return nil
	}
	handler := NewAuthHandlers(authSvc, "code")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = postJSON(t, ForgotPasswordRequest{Email: "nobody@example.com"})

	handler.ForgotPassword(domain.RoleCustomer)(c)

	// Always success-shaped so callers cannot fish for registered addresses.
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("expected success envelope, got %v", body)
	}
	if gotRole != domain.RoleCustomer || gotEmail != "nobody@example.com" {
		t.Errorf("service called with (%q, %q)", gotRole, gotEmail)
	}
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "valid token", serviceErr: nil, expectedStatus: http.StatusOK},
		{name: "unknown or expired token", serviceErr: domain.ErrTokenInvalid, expectedStatus: http.StatusUnauthorized},
		{name: "already used token", serviceErr: domain.ErrResetTokenUsed, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.ResetPasswordFunc = func(ctx context.Context, role, token, password string) error {
				return tt.serviceErr
			}
			handler := NewAuthHandlers(authSvc, "code")

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = postJSON(t, ResetPasswordRequest{Token: "abc123", Password: "newpassword"})

			handler.ResetPassword(domain.RoleVendor)(c)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
