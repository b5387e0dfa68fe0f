package auth

import (
	"context"
	"fmt"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/auth"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/jwt"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

// Service authenticates employees and manages token lifecycles. Google login
// matches on verified email only; it never provisions accounts.
type Service struct {
	jwtService    jwt.Service
	googleService oauth.GoogleService

	employee.EmployeeRepository
}

func NewService(
	jwtService jwt.Service,
	googleService oauth.GoogleService,
	employeeRepository employee.EmployeeRepository,
) *Service {
	return &Service{
		jwtService:         jwtService,
		googleService:      googleService,
		EmployeeRepository: employeeRepository,
	}
}

// Login implements auth.AuthService. Unknown email and wrong password
// produce the same error so the endpoint does not leak which emails exist.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(emp)
}

// LoginWithGoogle implements auth.AuthService.
func (s *Service) LoginWithGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	email, err := s.googleService.ExchangeEmail(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	emp, err := s.EmployeeRepository.GetByEmail(ctx, email)
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.issueTokens(emp)
}

// GoogleAuthURL implements auth.AuthService.
func (s *Service) GoogleAuthURL(state string) string {
	if state == "" {
		state = s.googleService.GenerateState()
	}
	return s.googleService.AuthURL(state)
}

// Refresh implements auth.AuthService. The refresh token is single purpose:
// an access token presented here fails the type check.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	employeeID, _ := claims["employee_id"].(string)
	tenantID, _ := claims["tenant_id"].(string)
	if employeeID == "" || tenantID == "" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, tenantID)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	if !emp.IsActive {
		return auth.RefreshResponse{}, auth.ErrAccountInactive
	}

	accessToken, _, err := s.jwtService.GenerateAccessToken(jwt.AccessClaims{
		EmployeeID: emp.ID,
		TenantID:   emp.TenantID,
		Email:      emp.Email,
		IsAdmin:    emp.IsAdmin,
	})
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.RefreshResponse{AccessToken: accessToken}, nil
}

// Logout implements auth.AuthService.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	s.jwtService.RevokeToken(accessToken)
	return nil
}

// ChangePassword implements auth.AuthService.
func (s *Service) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.TenantID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(req.OldPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	password := string(hashed)
	_, err = s.EmployeeRepository.Update(ctx, employee.UpdateEmployeeParams{
		ID:       req.EmployeeID,
		TenantID: req.TenantID,
		Password: &password,
	})
	return err
}

func (s *Service) issueTokens(emp employee.Employee) (auth.LoginResponse, error) {
	if !emp.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	accessToken, _, err := s.jwtService.GenerateAccessToken(jwt.AccessClaims{
		EmployeeID: emp.ID,
		TenantID:   emp.TenantID,
		Email:      emp.Email,
		IsAdmin:    emp.IsAdmin,
	})
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(emp.ID, emp.TenantID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	emp.Password = ""
	return auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Employee:     emp,
	}, nil
}
