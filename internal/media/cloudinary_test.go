package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freightdeck/freightdeck/internal/shared"
)

func TestUploadSendsUnsignedPresetForm(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "freight-preset", r.FormValue("upload_preset"))
		require.Equal(t, "Companies/Acme_Logistics/gst", r.FormValue("folder"))
		require.Equal(t, "1700000000000-gst-cert", r.FormValue("public_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "gst-cert.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.example/doc.pdf","public_id":"Companies/Acme_Logistics/gst/1700000000000-gst-cert"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "demo-cloud", "freight-preset")
	asset, err := client.Upload(context.Background(), KindRaw,
		"Companies/Acme_Logistics/gst", "1700000000000-gst-cert", "gst-cert.pdf",
		strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	require.Equal(t, "/v1_1/demo-cloud/raw/upload", gotPath)
	require.Equal(t, "https://res.example/doc.pdf", asset.URL)
	require.NotEmpty(t, asset.PublicID)
}

func TestUploadSurfacesRemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "demo-cloud", "freight-preset")
	_, err := client.Upload(context.Background(), KindImage, "f", "p", "logo.png", strings.NewReader("x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 400")
}

func TestCompanyFolderSanitizesName(t *testing.T) {
	require.Equal(t, "Companies/Acme_Logistics_Pvt__Ltd_/pan", CompanyFolder("Acme Logistics Pvt. Ltd.", "pan"))
}

func TestDriverFolderStripsNonPhoneCharacters(t *testing.T) {
	require.Equal(t, "Drivers/+919876543210/license", DriverFolder("+91 98765-43210", "license"))
}

func TestPublicIDs(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	require.Equal(t, "1700000000000-invoice", CompanyPublicID("invoice.pdf", now))
	folder := DriverFolder("+919876543210", "license")
	require.Equal(t, "Drivers/+919876543210/license/license_1700000000000", DriverPublicID(folder, "license", now))
}

func TestCheckSize(t *testing.T) {
	require.NoError(t, CheckSize(MaxDocumentBytes, MaxDocumentBytes))
	err := CheckSize(MaxLogoBytes+1, MaxLogoBytes)
	require.ErrorIs(t, err, shared.ErrUploadRejected)
}

func TestCheckDriverContentType(t *testing.T) {
	require.NoError(t, CheckDriverContentType("image/png"))
	require.NoError(t, CheckDriverContentType("application/pdf"))
	require.ErrorIs(t, CheckDriverContentType("image/gif"), shared.ErrUploadRejected)
	require.ErrorIs(t, CheckDriverContentType("text/html"), shared.ErrUploadRejected)
}
