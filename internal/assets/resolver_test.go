package assets

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil || r.HasCustomLoader() {
		t.Errorf("NewAssetResolver(\"\") = custom %v, err %v; want embedded only", r != nil && r.HasCustomLoader(), err)
	}

	r, err = NewAssetResolver(t.TempDir())
	if err != nil || !r.HasCustomLoader() {
		t.Errorf("NewAssetResolver(dir) err = %v, want custom loader", err)
	}

	if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_CustomFirstWithFallback(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", DefaultStyleName+".css", ".override{}")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.LoadStyle(DefaultStyleName)
	if err != nil || got != ".override{}" {
		t.Errorf("LoadStyle() = %q, %v; want custom override", got, err)
	}

	embedded, _ := NewEmbeddedLoader().LoadTemplate(DocumentTemplateName)
	got, err = r.LoadTemplate(DocumentTemplateName)
	if err != nil || got != embedded {
		t.Errorf("LoadTemplate() err = %v, want embedded fallback", err)
	}

	if _, err := r.LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(nonexistent) error = %v, want ErrStyleNotFound", err)
	}
}

func TestAssetResolver_ValidationErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.LoadStyle("../keitaro"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
	}
	if _, err := r.LoadTemplate("a.b"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTemplate() error = %v, want ErrInvalidAssetName", err)
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{ErrStyleNotFound, true},
		{ErrTemplateNotFound, true},
		{ErrInvalidAssetName, false},
		{ErrAssetRead, false},
		{errors.New("other"), false},
	}
	for _, tt := range tests {
		if got := isNotFoundError(tt.err); got != tt.want {
			t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
