package validate

import (
	"errors"
	"testing"
)

func TestPositive(t *testing.T) {
	tests := []struct {
		name    string
		value   float32
		wantErr bool
	}{
		{"positive", 1.5, false},
		{"zero", 0, true},
		{"negative", -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Positive("cylinder", "height", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Positive(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error %v should match ErrInvalidParameter", err)
			}
			var pe *InvalidParameterError
			if !errors.As(err, &pe) || pe.Field != "height" {
				t.Errorf("expected InvalidParameterError naming height, got %v", err)
			}
		})
	}
}

func TestFirst(t *testing.T) {
	want := Size("light", "color", 3, 4)
	got := First(nil, want, NonNegative("torus", "inner", -1))
	if got != want {
		t.Errorf("First returned %v, want %v", got, want)
	}
	if First(nil, nil) != nil {
		t.Error("First of nils should be nil")
	}
}
