package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestFormatTemplateExecutionErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ call .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ call .Name }}" {
		t.Fatal("expected template fallback on execute error")
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}

func TestGetCatalogFormatsEmbeddedTemplates(t *testing.T) {
	tests := []struct {
		locale   string
		code     Code
		metadata map[string]string
		want     string
	}{
		{
			locale:   "en-US",
			code:     "DICE_INVALID_SELECTION",
			metadata: map[string]string{"SelectionSize": "5", "PoolSize": "3"},
			want:     "Cannot select 5 dice from a pool of 3",
		},
		{
			locale:   "pt-BR",
			code:     "DICE_INVALID_DIE",
			metadata: map[string]string{"Sides": "7"},
			want:     "Não existe d7; use d4, d6, d8, d10, d12, d20 ou d100",
		},
		{
			locale: "de-DE",
			code:   "DICE_DIVIDE_BY_ZERO",
			want:   "Dice expression divides by zero",
		},
	}

	for _, tt := range tests {
		if got := GetCatalog(tt.locale).Format(tt.code, tt.metadata); got != tt.want {
			t.Errorf("GetCatalog(%q).Format(%s) = %q, want %q", tt.locale, tt.code, got, tt.want)
		}
	}
}

func TestGetCatalogLocale(t *testing.T) {
	if got := GetCatalog("pt-BR").Locale(); got != "pt-BR" {
		t.Fatalf("Locale() = %q, want pt-BR", got)
	}
	if got := GetCatalog("").Locale(); got != "en-US" {
		t.Fatalf("Locale() = %q, want en-US", got)
	}
}

func TestGetCatalogNegotiatesLanguage(t *testing.T) {
	if got := GetCatalog("pt").Locale(); got != "pt-BR" {
		t.Fatalf("Locale() = %q, want pt-BR", got)
	}
}
