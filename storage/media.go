package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Photo files live on Cloudinary, referenced by URL from the photos table.
// Configuration via CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY,
// CLOUDINARY_API_SECRET and optional CLOUDINARY_FOLDER.

func InitializeMedia() {}

// UploadBase64Image performs a signed upload and returns the hosted URL,
// or an empty string when the upload cannot be completed.
func UploadBase64Image(base64ImageSrc string, publicID string) string {
	if base64ImageSrc == "" {
		return ""
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return ""
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", apiKey)
	form.Add("public_id", finalPublicID)

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)

	// Cloudinary signs public_id + timestamp with SHA1
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, apiSecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode >= 300 {
		return ""
	}

	var uploadRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal(body, &uploadRes); err != nil {
		return ""
	}
	if uploadRes.SecureURL != "" {
		return uploadRes.SecureURL
	}
	return uploadRes.URL
}

// DeleteImage destroys the hosted copy of imageURL. Best effort; the row is
// authoritative and callers treat a failed destroy as non-fatal.
func DeleteImage(imageURL string) bool {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return false
	}

	publicID := publicIDFromURL(imageURL)
	if publicID == "" {
		return false
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/destroy"

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)

	form := url.Values{}
	form.Add("public_id", publicID)
	form.Add("api_key", apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	res, err := http.PostForm(endpoint, form)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode < 300
}

// publicIDFromURL recovers the public id from a delivery URL, e.g.
// .../image/upload/v12345/folder/name.jpg -> folder/name
func publicIDFromURL(imageURL string) string {
	i := strings.Index(imageURL, "/upload/")
	if i == -1 {
		return ""
	}
	rest := imageURL[i+len("/upload/"):]
	if j := strings.Index(rest, "/"); j != -1 && strings.HasPrefix(rest, "v") {
		rest = rest[j+1:]
	}
	if j := strings.LastIndex(rest, "."); j != -1 {
		rest = rest[:j]
	}
	return rest
}
