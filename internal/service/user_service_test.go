package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	roles := repository.NewUserRoleRepository(db)
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		roles,
		NewAccessService(roles, zap.NewNop()),
		repository.NewTransactionManager(db),
	)
}

func signUpRequest(email, aadhar string) SignUpRequest {
	return SignUpRequest{
		Email:        email,
		Password:     "secret123",
		FullName:     "Ramesh Kumar",
		Phone:        "9876543210",
		AadharNumber: aadhar,
		Address:      "Ward 12, Muzaffarpur",
	}
}

func TestSignUpCreatesCitizenAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	res, err := svc.SignUp(context.Background(), signUpRequest("ramesh@example.com", "123456789012"))
	require.NoError(t, err)
	assert.Equal(t, "ramesh@example.com", res.Email)
	assert.NotEqual(t, uuid.Nil, res.ID)

	// Password hash never leaks into the response struct, and the stored
	// password is not the plaintext.
	var stored model.User
	require.NoError(t, db.First(&stored, "email = ?", "ramesh@example.com").Error)
	assert.NotEqual(t, "secret123", stored.Password)

	var role model.UserRole
	require.NoError(t, db.First(&role, "user_id = ?", res.ID).Error)
	assert.Equal(t, model.RoleCitizen, role.Role)
}

func TestSignUpValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	_, err := svc.SignUp(context.Background(), signUpRequest("first@example.com", "123456789012"))
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*SignUpRequest)
	}{
		{"bad email", func(r *SignUpRequest) { r.Email = "not-an-email" }},
		{"short phone", func(r *SignUpRequest) { r.Phone = "98765" }},
		{"phone with letters", func(r *SignUpRequest) { r.Phone = "987654321x" }},
		{"short aadhar", func(r *SignUpRequest) { r.AadharNumber = "1234" }},
		{"duplicate email", func(r *SignUpRequest) { r.Email = "first@example.com" }},
		{"duplicate aadhar", func(r *SignUpRequest) { r.AadharNumber = "123456789012" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := signUpRequest("second@example.com", "222233334444")
			tc.mutate(&req)
			_, err := svc.SignUp(context.Background(), req)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestLoginAndRefreshRotation(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	_, err := svc.SignUp(context.Background(), signUpRequest("ramesh@example.com", "123456789012"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ramesh@example.com", Password: "wrong"})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	tokens, err := svc.Login(context.Background(), LoginRequest{Email: "ramesh@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)

	rotated, err := svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old token is spent.
	_, err = svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	require.NoError(t, svc.Logout(context.Background(), rotated.RefreshToken))
	_, err = svc.RefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestGetMeReportsRole(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	res, err := svc.SignUp(context.Background(), signUpRequest("ramesh@example.com", "123456789012"))
	require.NoError(t, err)

	me, err := svc.GetMe(context.Background(), res.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.RoleCitizen, me.Role)

	_, err = svc.GetMe(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.GetMe(context.Background(), "garbage")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	res, err := svc.SignUp(context.Background(), signUpRequest("ramesh@example.com", "123456789012"))
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), res.ID.String(), UpdateProfileRequest{
		FullName: "Ramesh K. Kumar",
		Address:  "Ward 14, Muzaffarpur",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ramesh K. Kumar", updated.FullName)
	assert.Equal(t, "Ward 14, Muzaffarpur", updated.Address)
	assert.Equal(t, "9876543210", updated.Phone) // untouched

	_, err = svc.UpdateProfile(context.Background(), res.ID.String(), UpdateProfileRequest{Phone: "12345"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.UpdateProfile(context.Background(), uuid.NewString(), UpdateProfileRequest{FullName: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListEligibleUsersFiltersIncompleteProfiles(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	_, err := svc.SignUp(context.Background(), signUpRequest("complete@example.com", "123456789012"))
	require.NoError(t, err)

	// Inserted directly to bypass sign-up validation, simulating a legacy
	// account with a partial profile.
	partial := &model.User{
		Email:        "partial@example.com",
		Password:     "x",
		FullName:     "Partial Profile",
		Phone:        "12345",
		AadharNumber: "111122223333",
		Address:      "",
	}
	require.NoError(t, db.Create(partial).Error)

	eligible, err := svc.ListEligibleUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "complete@example.com", eligible[0].Email)
}

func TestAccessServiceDefaultsToCitizen(t *testing.T) {
	db := newTestDB(t)
	roles := repository.NewUserRoleRepository(db)
	access := NewAccessService(roles, zap.NewNop())

	unknown := uuid.New()
	assert.Equal(t, model.RoleCitizen, access.RoleFor(context.Background(), unknown))
	assert.False(t, access.IsAdmin(context.Background(), unknown))

	user := seedUser(t, db, "admin@example.com", "999988887777")
	require.NoError(t, roles.Assign(context.Background(), user.ID, model.RoleAdmin))
	assert.True(t, access.IsAdmin(context.Background(), user.ID))
}
