package hydrate

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecoderFromFixtures(t *testing.T) {
	fx := loadFixture(t, "decode_cases.json")

	for _, tc := range fx.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			decoder := NewDecoder(buildOptions(tc)...)

			result, err := decoder.DecodeBytes(Source{Name: tc.Name}, []byte(tc.Input))

			if tc.ExpectErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tc.ExpectErr)
				}
				if !strings.Contains(err.Error(), tc.ExpectErr) {
					t.Fatalf("expected error containing %q, got %v", tc.ExpectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if diff := cmp.Diff(tc.Expect, result); diff != "" {
				t.Fatalf("decoded value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecoderUseNumberKeepsLiteral(t *testing.T) {
	decoder := NewDecoder(WithUseNumber())
	value, err := decoder.DecodeBytes(Source{}, []byte(`{"big": 9007199254740993, "price": 1.50}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	doc := value.(map[string]any)
	if doc["big"] != json.Number("9007199254740993") {
		t.Fatalf("expected json.Number literal, got %#v", doc["big"])
	}
	if doc["price"] != json.Number("1.50") {
		t.Fatalf("expected json.Number literal, got %#v", doc["price"])
	}
}

func TestDecoderPreHookError(t *testing.T) {
	boom := errors.New("boom")
	decoder := NewDecoder(WithPreHook(func(Source, any) (any, error) { return nil, boom }))
	_, err := decoder.DecodeBytes(Source{Name: "in.json"}, []byte(`{}`))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped hook error, got %v", err)
	}
	if !strings.Contains(err.Error(), "in.json") {
		t.Fatalf("expected source name in error, got %v", err)
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"a": [1, 2]}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	value, err := NewDecoder().DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	want := map[string]any{"a": []any{float64(1), float64(2)}}
	if diff := cmp.Diff(want, value); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewDecoder().DecodeFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func buildOptions(tc fixtureCase) []DecoderOption {
	options := []DecoderOption{}
	for _, name := range tc.Options {
		switch name {
		case "use_number":
			options = append(options, WithUseNumber())
		case "allow_trailing":
			options = append(options, WithTrailingData())
		}
	}
	for _, name := range tc.PreHooks {
		switch name {
		case "envelope":
			options = append(options, WithPreHook(envelopePreHook))
		}
	}
	for _, name := range tc.PostHooks {
		switch name {
		case "require_container":
			options = append(options, WithPostHook(RequireContainer))
		}
	}
	return options
}

func envelopePreHook(_ Source, value any) (any, error) {
	if _, ok := value.([]any); ok {
		return map[string]any{"data": value}, nil
	}
	return value, nil
}

type fixture struct {
	Description string        `json:"description"`
	Cases       []fixtureCase `json:"cases"`
}

type fixtureCase struct {
	Name      string   `json:"name"`
	Input     string   `json:"input"`
	Expect    any      `json:"expect"`
	ExpectErr string   `json:"expectErr"`
	PreHooks  []string `json:"preHooks"`
	PostHooks []string `json:"postHooks"`
	Options   []string `json:"options"`
}

func loadFixture(t *testing.T, name string) fixture {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read hydrate fixture %q: %v", name, err)
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		t.Fatalf("failed to unmarshal hydrate fixture %q: %v", name, err)
	}
	return fx
}
