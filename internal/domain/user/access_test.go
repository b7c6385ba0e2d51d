package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessPolicyExactMembership(t *testing.T) {
	policy := NewAccessPolicy([]string{"aa@example.com", "boss@example.com"})

	admin := &User{Email: "boss@example.com"}
	assert.True(t, policy.IsAdmin(admin))

	// A substring of a listed email is not a member.
	substring := &User{Email: "a@example.com"}
	assert.False(t, policy.IsAdmin(substring))

	superstring := &User{Email: "aaa@example.com"}
	assert.False(t, policy.IsAdmin(superstring))
}

func TestAccessPolicyCaseInsensitive(t *testing.T) {
	policy := NewAccessPolicy([]string{" Boss@Example.COM "})

	assert.True(t, policy.IsAdminEmail("boss@example.com"))
	assert.True(t, policy.IsAdmin(&User{Email: "BOSS@EXAMPLE.COM"}))
}

func TestAccessPolicyEmptyAndNil(t *testing.T) {
	policy := NewAccessPolicy(nil)

	assert.False(t, policy.IsAdmin(nil))
	assert.False(t, policy.IsAdmin(&User{Email: "anyone@example.com"}))
	assert.False(t, policy.IsAdminEmail(""))
}

func TestRoleHelpers(t *testing.T) {
	employee := &User{Role: RoleEmployee}
	ttf := &User{Role: RoleTTF}
	sttf := &User{Role: RoleSuperTTF}

	assert.True(t, employee.IsEmployee())
	assert.False(t, employee.CanApprove())

	assert.True(t, ttf.IsTTF())
	assert.True(t, ttf.CanApprove())

	assert.True(t, sttf.IsSuperTTF())
	assert.True(t, sttf.CanApprove())

	assert.Equal(t, "employee", RoleEmployee.String())
	assert.Equal(t, "ttf", RoleTTF.String())
	assert.Equal(t, "super_ttf", RoleSuperTTF.String())
	assert.Equal(t, "unknown", Role(9).String())
}
