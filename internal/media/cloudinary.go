package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Asset is the stored location of an uploaded file.
type Asset struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// ResourceKind selects the Cloudinary upload endpoint variant.
type ResourceKind string

const (
	KindImage ResourceKind = "image"
	KindRaw   ResourceKind = "raw"
	KindAuto  ResourceKind = "auto"
)

// Client uploads files to Cloudinary using unsigned preset uploads.
type Client struct {
	baseURL      string
	cloudName    string
	uploadPreset string
	httpClient   *http.Client
}

// NewClient constructs a new client for the named Cloudinary account.
func NewClient(cloudName, uploadPreset string) *Client {
	return &Client{
		baseURL:      "https://api.cloudinary.com",
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL is for tests pointing at a stub server.
func NewClientWithBaseURL(baseURL, cloudName, uploadPreset string) *Client {
	c := NewClient(cloudName, uploadPreset)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload sends one file to Cloudinary and returns where it landed.
func (c *Client) Upload(ctx context.Context, kind ResourceKind, folder, publicID, filename string, file io.Reader) (Asset, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return Asset{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return Asset{}, err
	}
	if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
		return Asset{}, err
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return Asset{}, err
	}
	if err := writer.WriteField("public_id", publicID); err != nil {
		return Asset{}, err
	}
	if err := writer.Close(); err != nil {
		return Asset{}, err
	}

	url := fmt.Sprintf("%s/v1_1/%s/%s/upload", c.baseURL, c.cloudName, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return Asset{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Asset{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return Asset{}, fmt.Errorf("cloudinary upload failed with status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Asset{}, fmt.Errorf("decode cloudinary response: %w", err)
	}
	return Asset{PublicID: parsed.PublicID, URL: parsed.SecureURL}, nil
}

var (
	companySegment = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	mobileSegment  = regexp.MustCompile(`[^0-9+]`)
)

// CompanyFolder builds the folder for a company document. Company names
// are free text, so every unsafe character becomes an underscore.
func CompanyFolder(companyName, docType string) string {
	return fmt.Sprintf("Companies/%s/%s", companySegment.ReplaceAllString(companyName, "_"), docType)
}

// CompanyPublicID derives the public id for a company document from the
// uploaded filename, prefixed with a millisecond timestamp so repeated
// uploads never collide.
func CompanyPublicID(filename string, now time.Time) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}

// DriverFolder builds the folder for a driver document, keyed by the
// driver's mobile number with everything but digits and + stripped.
func DriverFolder(mobileNumber, docType string) string {
	return fmt.Sprintf("Drivers/%s/%s", mobileSegment.ReplaceAllString(mobileNumber, ""), docType)
}

// DriverPublicID derives the public id for a driver document.
func DriverPublicID(folder, docType string, now time.Time) string {
	return fmt.Sprintf("%s/%s_%d", folder, docType, now.UnixMilli())
}
