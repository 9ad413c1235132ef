package routes

import (
	"net/http"
	"strings"
	"testing"

	"github.com/iris-contrib/httpexpect/v2"
)

func TestCreateMessageRoutesToLandlord(t *testing.T) {
	e := setupTestApp(t)

	ownerToken, ownerID := registerAndLogin(t, e, "owner@example.com", "LANDLORD")
	tenantToken, tenantID := registerAndLogin(t, e, "tenant@example.com", "TENANT")

	id := createListing(t, e, ownerToken, "Chatty flat", "PENDING")
	publishProperty(t, id)

	message := e.POST("/api/messages").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"propertyID": id,
			"subject":    "Visit request",
			"content":    "Hello, I would love to arrange a visit next week.",
		}).Expect().Status(http.StatusCreated).JSON().Object()

	message.Value("senderID").Number().IsEqual(int(tenantID))
	message.Value("recipientID").Number().IsEqual(int(ownerID))
	message.Value("isRead").Boolean().IsFalse()
}

func TestCreateMessageContentBounds(t *testing.T) {
	e := setupTestApp(t)

	ownerToken, _ := registerAndLogin(t, e, "owner@example.com", "LANDLORD")
	tenantToken, _ := registerAndLogin(t, e, "tenant@example.com", "TENANT")

	id := createListing(t, e, ownerToken, "Chatty flat", "PENDING")
	publishProperty(t, id)

	send := func(content string) *httpexpect.Response {
		return e.POST("/api/messages").
			WithHeader("Authorization", authHeader(tenantToken)).
			WithJSON(map[string]interface{}{
				"propertyID": id,
				"subject":    "Bounds",
				"content":    content,
			}).Expect()
	}

	send(strings.Repeat("a", 19)).Status(http.StatusBadRequest)
	send(strings.Repeat("a", 20)).Status(http.StatusCreated)
	send(strings.Repeat("a", 1000)).Status(http.StatusCreated)
	send(strings.Repeat("a", 1001)).Status(http.StatusBadRequest)
}

func TestMessageRequiresPublishedListing(t *testing.T) {
	e := setupTestApp(t)

	ownerToken, _ := registerAndLogin(t, e, "owner@example.com", "LANDLORD")
	tenantToken, _ := registerAndLogin(t, e, "tenant@example.com", "TENANT")

	draftID := createListing(t, e, ownerToken, "Hidden flat", "DRAFT")

	e.POST("/api/messages").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"propertyID": draftID,
			"subject":    "Visit request",
			"content":    "Hello, I would love to arrange a visit next week.",
		}).Expect().Status(http.StatusNotFound)
}

func TestMessageBoxesAndUnreadCount(t *testing.T) {
	e := setupTestApp(t)

	ownerToken, _ := registerAndLogin(t, e, "owner@example.com", "LANDLORD")
	tenantToken, _ := registerAndLogin(t, e, "tenant@example.com", "TENANT")

	id := createListing(t, e, ownerToken, "Chatty flat", "PENDING")
	publishProperty(t, id)

	for i := 0; i < 2; i++ {
		e.POST("/api/messages").
			WithHeader("Authorization", authHeader(tenantToken)).
			WithJSON(map[string]interface{}{
				"propertyID": id,
				"subject":    "Visit request",
				"content":    "Hello, I would love to arrange a visit next week.",
			}).Expect().Status(http.StatusCreated)
	}

	inbox := e.GET("/api/messages/inbox").
		WithHeader("Authorization", authHeader(ownerToken)).
		Expect().Status(http.StatusOK).JSON().Object()
	inbox.Value("meta").Object().Value("total").Number().IsEqual(2)

	sent := e.GET("/api/messages/sent").
		WithHeader("Authorization", authHeader(tenantToken)).
		Expect().Status(http.StatusOK).JSON().Object()
	sent.Value("meta").Object().Value("total").Number().IsEqual(2)

	// the tenant received nothing
	e.GET("/api/messages/inbox").
		WithHeader("Authorization", authHeader(tenantToken)).
		Expect().Status(http.StatusOK).JSON().Object().
		Value("meta").Object().Value("total").Number().IsEqual(0)

	e.GET("/api/messages/unread-count").
		WithHeader("Authorization", authHeader(ownerToken)).
		Expect().Status(http.StatusOK).JSON().Object().
		Value("unreadCount").Number().IsEqual(2)
}

func TestMarkMessageRead(t *testing.T) {
	e := setupTestApp(t)

	ownerToken, _ := registerAndLogin(t, e, "owner@example.com", "LANDLORD")
	tenantToken, _ := registerAndLogin(t, e, "tenant@example.com", "TENANT")
	outsiderToken, _ := registerAndLogin(t, e, "outsider@example.com", "TENANT")

	id := createListing(t, e, ownerToken, "Chatty flat", "PENDING")
	publishProperty(t, id)

	created := e.POST("/api/messages").
		WithHeader("Authorization", authHeader(tenantToken)).
		WithJSON(map[string]interface{}{
			"propertyID": id,
			"subject":    "Visit request",
			"content":    "Hello, I would love to arrange a visit next week.",
		}).Expect().Status(http.StatusCreated).JSON().Object()
	messageID := uint(created.Value("ID").Number().Raw())

	// the sender sees the message but cannot mark it
	e.POST("/api/messages/{id}/read", messageID).
		WithHeader("Authorization", authHeader(tenantToken)).
		Expect().Status(http.StatusForbidden)

	// outsiders do not even learn it exists
	e.POST("/api/messages/{id}/read", messageID).
		WithHeader("Authorization", authHeader(outsiderToken)).
		Expect().Status(http.StatusNotFound)

	read := e.POST("/api/messages/{id}/read", messageID).
		WithHeader("Authorization", authHeader(ownerToken)).
		Expect().Status(http.StatusOK).JSON().Object()
	read.Value("isRead").Boolean().IsTrue()
	read.Value("readAt").NotNull()

	// idempotent for the recipient
	e.POST("/api/messages/{id}/read", messageID).
		WithHeader("Authorization", authHeader(ownerToken)).
		Expect().Status(http.StatusOK)

	e.GET("/api/messages/unread-count").
		WithHeader("Authorization", authHeader(ownerToken)).
		Expect().Status(http.StatusOK).JSON().Object().
		Value("unreadCount").Number().IsEqual(0)
}
