package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/officetrack/attendance-backend-go/internal/domain/user"
	"github.com/officetrack/attendance-backend-go/internal/handler/http/response"
)

// roleFromClaims reads the numeric role claim. Numbers come back from the
// token as float64 or json.Number depending on the decoder.
func roleFromClaims(claims map[string]interface{}) (user.Role, bool) {
	switch v := claims["role"].(type) {
	case float64:
		return user.Role(int(v)), true
	case int:
		return user.Role(v), true
	case int64:
		return user.Role(int(v)), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return user.Role(int(n)), true
	default:
		return 0, false
	}
}

// RequireApprover admits TTF and Super TTF roles, and admins regardless
// of role.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverRoleRequired)
			return
		}

		if admin, ok := claims["is_admin"].(bool); ok && admin {
			next.ServeHTTP(w, r)
			return
		}

		role, ok := roleFromClaims(claims)
		if !ok || (role != user.RoleTTF && role != user.RoleSuperTTF) {
			response.HandleError(w, user.ErrApproverRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
