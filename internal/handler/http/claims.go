package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/auth"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/jwt"
)

// accessClaims pulls the identity claims off the verified token. The
// verifier middleware has already run, so a failure here means the token is
// malformed rather than missing.
func accessClaims(r *http.Request) (jwt.AccessClaims, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return jwt.AccessClaims{}, auth.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return jwt.AccessClaims{}, auth.ErrInvalidToken
	}
	tenantID, ok := claims["tenant_id"].(string)
	if !ok || tenantID == "" {
		return jwt.AccessClaims{}, auth.ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return jwt.AccessClaims{
		EmployeeID: employeeID,
		TenantID:   tenantID,
		Email:      email,
		IsAdmin:    isAdmin,
	}, nil
}
