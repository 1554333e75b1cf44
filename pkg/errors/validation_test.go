package errors

import (
	"math"
	"testing"
)

func TestValidateScanPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid relative", path: "some/dir", wantErr: false},
		{name: "valid absolute", path: "/var/log", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "null byte", path: "dir\x00name", wantErr: true},
		{name: "control character", path: "dir\x01name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScanPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScanPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("expected INVALID_PATH code, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		wantErr    bool
	}{
		{name: "valid", x: 0, y: 0, w: 600, h: 400, wantErr: false},
		{name: "offset origin", x: 10, y: 20, w: 100, h: 100, wantErr: false},
		{name: "zero width", x: 0, y: 0, w: 0, h: 100, wantErr: true},
		{name: "negative height", x: 0, y: 0, w: 100, h: -1, wantErr: true},
		{name: "NaN width", x: 0, y: 0, w: math.NaN(), h: 100, wantErr: true},
		{name: "infinite height", x: 0, y: 0, w: 100, h: math.Inf(1), wantErr: true},
		{name: "NaN origin", x: math.NaN(), y: 0, w: 100, h: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBounds(tt.x, tt.y, tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBounds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidBounds) {
				t.Errorf("expected INVALID_BOUNDS code, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"svg", "json"}

	if err := ValidateFormat("svg", supported); err != nil {
		t.Errorf("ValidateFormat(svg) = %v, want nil", err)
	}
	if err := ValidateFormat("pdf", supported); err == nil {
		t.Error("ValidateFormat(pdf) = nil, want error")
	} else if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT code, got %v", GetCode(err))
	}
}
