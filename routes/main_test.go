package routes

import (
	"fmt"
	"net/http"
	"os"
	"testing"

	"rental-marketplace-server/models"
	"rental-marketplace-server/storage"

	"github.com/glebarez/sqlite"
	"github.com/iris-contrib/httpexpect/v2"
	"github.com/kataras/iris/v12/httptest"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "password1234"

func TestMain(m *testing.M) {
	os.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret-0123456789abcdef")
	os.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret-0123456789abcdef")
	os.Setenv("AUTH_RATE_LIMIT_RPS", "10000")
	os.Setenv("AUTH_RATE_LIMIT_BURST", "10000")
	storage.InitializeRedis()
	os.Exit(m.Run())
}

var testDBSequence int

// setupTestApp gives each test a fresh in-memory database and a client
// bound to a fresh application instance.
func setupTestApp(t *testing.T) *httpexpect.Expect {
	t.Helper()

	testDBSequence++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSequence)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	storage.DB = db
	storage.InvalidateAmenityCache()

	return httptest.New(t, BuildApp())
}

func registerUser(t *testing.T, e *httpexpect.Expect, email, role string) {
	t.Helper()

	e.POST("/api/user/register").WithJSON(map[string]interface{}{
		"firstName":       "Test",
		"lastName":        "User",
		"email":           email,
		"password":        testPassword,
		"passwordConfirm": testPassword,
		"role":            role,
	}).Expect().Status(http.StatusCreated)
}

func loginUser(t *testing.T, e *httpexpect.Expect, email string) (token string, id uint) {
	t.Helper()

	obj := e.POST("/api/user/login").WithJSON(map[string]interface{}{
		"email":    email,
		"password": testPassword,
	}).Expect().Status(http.StatusOK).JSON().Object()

	token = obj.Value("accessToken").String().NotEmpty().Raw()
	id = uint(obj.Value("ID").Number().Raw())
	return token, id
}

func registerAndLogin(t *testing.T, e *httpexpect.Expect, email, role string) (token string, id uint) {
	t.Helper()

	registerUser(t, e, email, role)
	return loginUser(t, e, email)
}

// createAdmin inserts the admin directly, registration never grants
// the role.
func createAdmin(t *testing.T, e *httpexpect.Expect, email string) (token string, id uint) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	admin := models.User{
		FirstName: "Ada",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		Status:    models.UserStatusActive,
	}
	require.NoError(t, storage.DB.Create(&admin).Error)

	return loginUser(t, e, email)
}

func authHeader(token string) string {
	return "Bearer " + token
}

func listingPayload(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":             title,
		"description":       "Bright two bedroom apartment close to the tram line.",
		"type":              "APARTMENT",
		"surface":           62.5,
		"numberOfRooms":     3,
		"numberOfBedrooms":  2,
		"numberOfBathrooms": 1,
		"furnished":         true,
		"monthlyRent":       1350.0,
		"charges":           120.0,
		"chargesIncluded":   false,
		"deposit":           2700.0,
		"agencyFees":        400.0,
		"address": map[string]interface{}{
			"streetAddress": "12 Rue des Lilas",
			"city":          "Lyon",
			"postalCode":    "69003",
			"district":      "Part-Dieu",
		},
	}
}

func createListing(t *testing.T, e *httpexpect.Expect, token, title, status string) uint {
	t.Helper()

	payload := listingPayload(title)
	if status != "" {
		payload["status"] = status
	}

	obj := e.POST("/api/properties").
		WithHeader("Authorization", authHeader(token)).
		WithJSON(payload).
		Expect().Status(http.StatusCreated).JSON().Object()

	return uint(obj.Value("ID").Number().Raw())
}

// publishProperty flips the row directly, moderation has its own tests.
func publishProperty(t *testing.T, id uint) {
	t.Helper()

	err := storage.DB.Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", models.PropertyStatusPublished).Error
	require.NoError(t, err)
}
