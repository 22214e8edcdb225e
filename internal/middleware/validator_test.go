package middleware

import "testing"

func TestValidatePhotoType(t *testing.T) {
	cases := []struct {
		contentType string
		wantErr     bool
	}{
		{"image/jpeg", false},
		{"image/png", false},
		{"image/heic", false},
		{"image/heif", false},
		{"IMAGE/JPEG", false},
		{"image/jpeg; charset=binary", false},
		{" image/png ", false},
		{"image/gif", true},
		{"image/webp", true},
		{"application/pdf", true},
		{"", true},
	}
	for _, tc := range cases {
		err := ValidatePhotoType(tc.contentType)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidatePhotoType(%q) = %v, wantErr=%v", tc.contentType, err, tc.wantErr)
		}
	}
}

func TestValidatePhotoSize(t *testing.T) {
	cases := []struct {
		size    int64
		wantErr bool
	}{
		{0, true},
		{-1, true},
		{1, false},
		{MaxPhotoBytes, false},
		{MaxPhotoBytes + 1, true},
	}
	for _, tc := range cases {
		err := ValidatePhotoSize(tc.size)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidatePhotoSize(%d) = %v, wantErr=%v", tc.size, err, tc.wantErr)
		}
	}
}

func TestValidatePhotoURL(t *testing.T) {
	cases := []struct {
		url     string
		wantErr bool
	}{
		{"https://cdn.example.com/photos/a.jpg", false},
		{"http://cdn.example.com/photos/a.jpg", false},
		{"ftp://cdn.example.com/photos/a.jpg", true},
		{"file:///etc/passwd", true},
		{"", true},
		{"http://localhost:9000/bucket/a.jpg", true},
		{"http://127.0.0.1/a.jpg", true},
		{"http://192.168.1.5/a.jpg", true},
		{"http://10.0.0.2/a.jpg", true},
	}
	for _, tc := range cases {
		err := ValidatePhotoURL(tc.url)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidatePhotoURL(%q) = %v, wantErr=%v", tc.url, err, tc.wantErr)
		}
	}
}
