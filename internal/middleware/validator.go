package middleware

import (
	"fmt"
	"net/url"
	"strings"
)

// Input validation and sanitization utilities

// MaxPhotoBytes is the per-photo upload limit. A photo of exactly this size
// is accepted; one byte over is rejected.
const MaxPhotoBytes = 6 << 20 // 6 MiB

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/heic": true,
	"image/heif": true,
}

// ValidatePhotoType checks the upload content type against the allowed list
func ValidatePhotoType(contentType string) error {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	// strip parameters like "; charset=..."
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	if !allowedPhotoTypes[ct] {
		return fmt.Errorf("unsupported content type: %s (allowed: image/jpeg, image/png, image/heic, image/heif)", contentType)
	}
	return nil
}

// ValidatePhotoSize rejects empty and oversized uploads
func ValidatePhotoSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > MaxPhotoBytes {
		return fmt.Errorf("file too large: %d bytes (max %d)", size, MaxPhotoBytes)
	}
	return nil
}

// ValidatePhotoURL validates and sanitizes photo reference URLs
func ValidatePhotoURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (allowed: http, https)", u.Scheme)
	}

	// Check for localhost/internal IPs (SSRF protection)
	host := strings.ToLower(u.Hostname())
	blocked := []string{"localhost", "127.0.0.1", "0.0.0.0", "[::]", "::1"}
	for _, b := range blocked {
		if strings.Contains(host, b) {
			return fmt.Errorf("localhost/internal IPs are not allowed")
		}
	}

	// Block private IP ranges (basic check)
	if strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "172.16.") ||
		strings.HasPrefix(host, "172.31.") {
		return fmt.Errorf("private IP ranges are not allowed")
	}

	return nil
}
