package auth

import (
	"strings"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

// Identity is the role-bound caller resolved from a session token.
// It lives for one request and is never cached.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func roleIs(role string, want models.Role) bool {
	return strings.EqualFold(strings.TrimSpace(role), string(want))
}

// IsSystemAdmin reports an exact system_admin role
func (i *Identity) IsSystemAdmin() bool {
	return i != nil && roleIs(i.Role, models.RoleSystemAdmin)
}

// IsRecruitAdmin reports an exact recruitment_admin role
func (i *Identity) IsRecruitAdmin() bool {
	return i != nil && roleIs(i.Role, models.RoleRecruitAdmin)
}

// IsStudent reports an exact student role
func (i *Identity) IsStudent() bool {
	return i != nil && roleIs(i.Role, models.RoleStudent)
}

// CanManageRecruitment is true for recruitment and system administrators
func (i *Identity) CanManageRecruitment() bool {
	return i.IsRecruitAdmin() || i.IsSystemAdmin()
}

// RequireRecruitment fails with Forbidden unless the identity can manage recruitment
func RequireRecruitment(i *Identity) error {
	if !i.CanManageRecruitment() {
		return apperrors.ErrRecruitmentRequired
	}
	return nil
}

// RequireSystemAdmin fails with Forbidden unless the identity is a system administrator
func RequireSystemAdmin(i *Identity) error {
	if !i.IsSystemAdmin() {
		return apperrors.ErrSystemAdminRequired
	}
	return nil
}

// RequireStudent fails with Forbidden unless the identity is a student
func RequireStudent(i *Identity) error {
	if !i.IsStudent() {
		return apperrors.ErrStudentRequired
	}
	return nil
}

// Display roles returned by login for older clients
const (
	DisplayRoleAdmin   = "ADMIN"
	DisplayRoleRecruit = "RECRUIT"
	DisplayRoleStudent = "STUDENT"
)

// LegacyDisplayRole maps a stored role onto the coarse login display role.
// It matches substrings and must not be used for authorization.
func LegacyDisplayRole(role string) string {
	r := strings.ToLower(role)
	switch {
	case strings.Contains(r, "admin"):
		return DisplayRoleAdmin
	case strings.Contains(r, "recruit"):
		return DisplayRoleRecruit
	default:
		return DisplayRoleStudent
	}
}
