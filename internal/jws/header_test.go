package jws

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderPreservesOrder(t *testing.T) {
	h := NewHeader()
	h.Set("typ", "JWT")
	h.Set("alg", "HS256")
	h.Set("kid", "key-1")
	h.Set("typ", "at+jwt")

	if diff := cmp.Diff([]string{"typ", "alg", "kid"}, h.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	got, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"typ":"at+jwt","alg":"HS256","kid":"key-1"}`
	if string(got) != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	inputs := []string{
		`{"typ":"JWT","alg":"HS256"}`,
		`{"alg":"ES512","typ":"JWT","kid":"k","x5t":"abc"}`,
		`{"zeta":1,"alpha":2.5,"mid":true,"crit":["exp"],"nested":{"a":1,"b":2}}`,
		`{}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			h := NewHeader()
			if err := json.Unmarshal([]byte(in), h); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			out, err := json.Marshal(h)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(out) != in {
				t.Errorf("Expected %s, got %s", in, out)
			}
		})
	}
}

func TestHeaderUnmarshalErrors(t *testing.T) {
	inputs := []string{
		`[]`,
		`"alg"`,
		`{"alg":"HS256","alg":"none"}`,
		`{"alg":`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			h := NewHeader()
			if err := json.Unmarshal([]byte(in), h); err == nil {
				t.Errorf("Expected error for %s, got keys %v", in, h.Keys())
			}
		})
	}
}

func TestHeaderAlg(t *testing.T) {
	h := NewHeader()
	if _, ok := h.Alg(); ok {
		t.Error("Expected no alg on an empty header")
	}

	h.Set("alg", 256)
	if _, ok := h.Alg(); ok {
		t.Error("Expected non-string alg to be reported as absent")
	}

	h.Set("alg", "RS384")
	if alg, ok := h.Alg(); !ok || alg != "RS384" {
		t.Errorf("Expected RS384, got %q (%v)", alg, ok)
	}

	var nilHeader *Header
	if nilHeader.Len() != 0 || nilHeader.Keys() != nil {
		t.Error("Expected nil header to be empty")
	}
}
