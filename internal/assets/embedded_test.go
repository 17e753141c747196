package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain []string
	}{
		{
			name:      "loads keitaro style",
			styleName: DefaultStyleName,
			wantContain: []string{
				".keitaro-landing-wrapper",
				".keitaro-col-33 { flex: 0 0 33.333333%; max-width: 33.333333%; }",
				"@keyframes pulse",
				"@media (max-width: 768px)",
				"@media (max-width: 480px)",
			},
		},
		{name: "nonexistent style", styleName: "nonexistent-style-xyz", wantErr: ErrStyleNotFound},
		{name: "empty name", styleName: "", wantErr: ErrInvalidAssetName},
		{name: "path traversal", styleName: "../secret", wantErr: ErrInvalidAssetName},
		{name: "name with dot", styleName: "keitaro.css", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("LoadStyle(%q) should contain %q", tt.styleName, want)
				}
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name         string
		templateName string
		wantErr      error
		wantContain  []string
	}{
		{
			name:         "document template",
			templateName: DocumentTemplateName,
			wantContain: []string{
				"{{.Body}}",
				"{{.Stylesheet}}",
				"keitaro-landing-wrapper",
				"function keitaroConversion(action)",
				`_keitaro.push(["trackPageView"]);`,
				"{offer_name} - {campaign_name}",
			},
		},
		{
			name:         "error template",
			templateName: ErrorTemplateName,
			wantContain:  []string{"{{.Message}}", "error-details"},
		},
		{name: "nonexistent template", templateName: "cover", wantErr: ErrTemplateNotFound},
		{name: "invalid name", templateName: "../document", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.templateName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.templateName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.templateName, err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("LoadTemplate(%q) should contain %q", tt.templateName, want)
				}
			}
		})
	}
}

func TestMustStyle(t *testing.T) {
	t.Parallel()

	css := MustStyle()
	if css == "" {
		t.Fatal("MustStyle() returned empty stylesheet")
	}
	again, err := LoadStyle(DefaultStyleName)
	if err != nil || again != css {
		t.Errorf("LoadStyle(%q) = %d bytes, %v; want identical to MustStyle()", DefaultStyleName, len(again), err)
	}
}

func TestEmbeddedLoader_KindsStaySeparate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	if _, err := loader.LoadStyle(DocumentTemplateName); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(%q) error = %v, want ErrStyleNotFound", DocumentTemplateName, err)
	}
	if _, err := loader.LoadTemplate(DefaultStyleName); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(%q) error = %v, want ErrTemplateNotFound", DefaultStyleName, err)
	}
}
