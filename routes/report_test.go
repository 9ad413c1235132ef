package routes

import (
	"net/http"
	"testing"
)

func TestCreateReportTargetsExactlyOne(t *testing.T) {
	e := setupTestApp(t)

	ownerToken, ownerID := registerAndLogin(t, e, "owner@example.com", "LANDLORD")
	tenantToken, _ := registerAndLogin(t, e, "tenant@example.com", "TENANT")

	id := createListing(t, e, ownerToken, "Fishy flat", "PENDING")
	publishProperty(t, id)

	// both targets set
	e.POST("/api/reports").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"propertyID":     id,
			"reportedUserID": ownerID,
			"reason":         "FRAUD",
			"description":    "The deposit is asked over wire transfer before any visit.",
		}).Expect().Status(http.StatusBadRequest)

	// no target at all
	e.POST("/api/reports").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"reason":      "FRAUD",
			"description": "The deposit is asked over wire transfer before any visit.",
		}).Expect().Status(http.StatusBadRequest)

	// bad reason
	e.POST("/api/reports").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"propertyID":  id,
			"reason":      "SOMETHING_ELSE",
			"description": "The deposit is asked over wire transfer before any visit.",
		}).Expect().Status(http.StatusBadRequest)

	// unknown property
	e.POST("/api/reports").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"propertyID":  99999,
			"reason":      "FRAUD",
			"description": "The deposit is asked over wire transfer before any visit.",
		}).Expect().Status(http.StatusNotFound)

	created := e.POST("/api/reports").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"propertyID":  id,
			"reason":      "FRAUD",
			"description": "The deposit is asked over wire transfer before any visit.",
		}).Expect().Status(http.StatusCreated).JSON().Object()
	created.Value("status").String().IsEqual("PENDING")

	userReport := e.POST("/api/reports").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"reportedUserID": ownerID,
			"reason":         "OTHER",
			"description":    "This landlord keeps reposting the same misleading listing.",
		}).Expect().Status(http.StatusCreated).JSON().Object()
	userReport.Value("reportedUserID").Number().IsEqual(int(ownerID))
}

func TestListReportsScopedByRole(t *testing.T) {
	e := setupTestApp(t)

	ownerToken, _ := registerAndLogin(t, e, "owner@example.com", "LANDLORD")
	tenantToken, _ := registerAndLogin(t, e, "tenant@example.com", "TENANT")
	otherToken, _ := registerAndLogin(t, e, "other@example.com", "TENANT")
	adminToken, _ := createAdmin(t, e, "admin@example.com")

	id := createListing(t, e, ownerToken, "Fishy flat", "PENDING")
	publishProperty(t, id)

	for _, token := range []string{tenantToken, otherToken} {
		e.POST("/api/reports").
			WithHeader("Authorization", authHeader(token)).
			WithJSON(map[string]interface{}{
				"propertyID":  id,
				"reason":      "DUPLICATE",
				"description": "The same flat is listed three times with different prices.",
			}).Expect().Status(http.StatusCreated)
	}

	// reporters only see their own filings
	e.GET("/api/reports").
		WithHeader("Authorization", authHeader(tenantToken)).
		Expect().Status(http.StatusOK).JSON().Object().
		Value("meta").Object().Value("total").Number().IsEqual(1)

	// admins see all of them
	e.GET("/api/reports").
		WithHeader("Authorization", authHeader(adminToken)).
		Expect().Status(http.StatusOK).JSON().Object().
		Value("meta").Object().Value("total").Number().IsEqual(2)
}

func TestAdminClosesReports(t *testing.T) {
	e := setupTestApp(t)

	ownerToken, _ := registerAndLogin(t, e, "owner@example.com", "LANDLORD")
	tenantToken, _ := registerAndLogin(t, e, "tenant@example.com", "TENANT")
	adminToken, _ := createAdmin(t, e, "admin@example.com")

	id := createListing(t, e, ownerToken, "Fishy flat", "PENDING")
	publishProperty(t, id)

	created := e.POST("/api/reports").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"propertyID":  id,
			"reason":      "INAPPROPRIATE",
			"description": "The photos contain content unrelated to the property.",
		}).Expect().Status(http.StatusCreated).JSON().Object()
	reportID := uint(created.Value("ID").Number().Raw())

	resolved := e.POST("/api/admin/reports/{id}/resolve", reportID).
		WithHeader("Authorization", authHeader(adminToken)).
		Expect().Status(http.StatusOK).JSON().Object()
	resolved.Value("report").Object().Value("status").String().IsEqual("RESOLVED")
	resolved.Value("report").Object().Value("resolvedAt").NotNull()

	dismissed := e.POST("/api/admin/reports/{id}/dismiss", reportID).
		WithHeader("Authorization", authHeader(adminToken)).
		Expect().Status(http.StatusOK).JSON().Object()
	dismissed.Value("report").Object().Value("status").String().IsEqual("DISMISSED")

	// moderation queue endpoints are admin only
	e.POST("/api/admin/reports/{id}/resolve", reportID).
		WithHeader("Authorization", authHeader(tenantToken)).
		Expect().Status(http.StatusForbidden)
}
