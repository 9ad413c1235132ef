package routes

import (
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	e := setupTestApp(t)

	obj := e.POST("/api/user/register").WithJSON(map[string]interface{}{
		"firstName":       "Nina",
		"lastName":        "Katz",
		"email":           "nina@example.com",
		"password":        testPassword,
		"passwordConfirm": testPassword,
		"role":            "LANDLORD",
	}).Expect().Status(http.StatusCreated).JSON().Object()

	obj.Value("email").String().IsEqual("nina@example.com")
	obj.Value("role").String().IsEqual("LANDLORD")
	obj.Value("status").String().IsEqual("ACTIVE")
	obj.NotContainsKey("accessToken")

	login := e.POST("/api/user/login").WithJSON(map[string]interface{}{
		"email":    "nina@example.com",
		"password": testPassword,
	}).Expect().Status(http.StatusOK).JSON().Object()

	login.Value("accessToken").String().NotEmpty()
	login.Value("refreshToken").String().NotEmpty()
}

func TestRegisterValidation(t *testing.T) {
	e := setupTestApp(t)

	// short password
	e.POST("/api/user/register").WithJSON(map[string]interface{}{
		"firstName":       "Nina",
		"lastName":        "Katz",
		"email":           "nina@example.com",
		"password":        "short",
		"passwordConfirm": "short",
	}).Expect().Status(http.StatusBadRequest)

	// mismatched confirmation must not create the account
	e.POST("/api/user/register").WithJSON(map[string]interface{}{
		"firstName":       "Nina",
		"lastName":        "Katz",
		"email":           "nina@example.com",
		"password":        testPassword,
		"passwordConfirm": "something-else12",
	}).Expect().Status(http.StatusBadRequest)

	e.POST("/api/user/login").WithJSON(map[string]interface{}{
		"email":    "nina@example.com",
		"password": testPassword,
	}).Expect().Status(http.StatusUnauthorized)

	// role cannot be self-assigned to ADMIN
	e.POST("/api/user/register").WithJSON(map[string]interface{}{
		"firstName":       "Nina",
		"lastName":        "Katz",
		"email":           "nina@example.com",
		"password":        testPassword,
		"passwordConfirm": testPassword,
		"role":            "ADMIN",
	}).Expect().Status(http.StatusBadRequest)

	// VISITOR is the unauthenticated default, not a registrable role
	e.POST("/api/user/register").WithJSON(map[string]interface{}{
		"firstName":       "Nina",
		"lastName":        "Katz",
		"email":           "nina@example.com",
		"password":        testPassword,
		"passwordConfirm": testPassword,
		"role":            "VISITOR",
	}).Expect().Status(http.StatusBadRequest)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := setupTestApp(t)

	registerUser(t, e, "dupe@example.com", "TENANT")

	e.POST("/api/user/register").WithJSON(map[string]interface{}{
		"firstName":       "Other",
		"lastName":        "Person",
		"email":           "dupe@example.com",
		"password":        testPassword,
		"passwordConfirm": testPassword,
	}).Expect().Status(http.StatusConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	e := setupTestApp(t)

	registerUser(t, e, "nina@example.com", "TENANT")

	e.POST("/api/user/login").WithJSON(map[string]interface{}{
		"email":    "nina@example.com",
		"password": "not-the-password",
	}).Expect().Status(http.StatusUnauthorized)
}

func TestGetAndUpdateProfile(t *testing.T) {
	e := setupTestApp(t)

	token, _ := registerAndLogin(t, e, "nina@example.com", "TENANT")

	profile := e.GET("/api/user/me").
		WithHeader("Authorization", authHeader(token)).
		Expect().Status(http.StatusOK).JSON().Object()
	profile.Value("email").String().IsEqual("nina@example.com")
	profile.Value("role").String().IsEqual("TENANT")

	updated := e.PATCH("/api/user/me").
		WithHeader("Authorization", authHeader(token)).
		WithJSON(map[string]interface{}{"firstName": "Antonina", "phone": "+33612345678"}).
		Expect().Status(http.StatusOK).JSON().Object()
	updated.Value("firstName").String().IsEqual("Antonina")
	updated.Value("phone").String().IsEqual("+33612345678")

	e.GET("/api/user/me").Expect().Status(http.StatusUnauthorized)
}

func TestChangePassword(t *testing.T) {
	e := setupTestApp(t)

	token, _ := registerAndLogin(t, e, "nina@example.com", "TENANT")

	// mismatched confirmation
	e.POST("/api/user/me/password").
		WithHeader("Authorization", authHeader(token)).
		WithJSON(map[string]interface{}{
			"currentPassword":    testPassword,
			"newPassword":        "brand-new-pass",
			"newPasswordConfirm": "other-new-pass",
		}).Expect().Status(http.StatusBadRequest)

	// wrong current password
	e.POST("/api/user/me/password").
		WithHeader("Authorization", authHeader(token)).
		WithJSON(map[string]interface{}{
			"currentPassword":    "not-the-password",
			"newPassword":        "brand-new-pass",
			"newPasswordConfirm": "brand-new-pass",
		}).Expect().Status(http.StatusBadRequest)

	e.POST("/api/user/me/password").
		WithHeader("Authorization", authHeader(token)).
		WithJSON(map[string]interface{}{
			"currentPassword":    testPassword,
			"newPassword":        "brand-new-pass",
			"newPasswordConfirm": "brand-new-pass",
		}).Expect().Status(http.StatusOK)

	e.POST("/api/user/login").WithJSON(map[string]interface{}{
		"email":    "nina@example.com",
		"password": "brand-new-pass",
	}).Expect().Status(http.StatusOK)

	e.POST("/api/user/login").WithJSON(map[string]interface{}{
		"email":    "nina@example.com",
		"password": testPassword,
	}).Expect().Status(http.StatusUnauthorized)
}
