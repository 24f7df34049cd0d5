package grammar

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/TheusHen/kryptolang/kryptolang/keys"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		pass string
		want Profile
	}{
		{"kryptolang", Profile{Syntax: OV, Tense: Past}},
		{"testkey-OV-future", Profile{Syntax: VO, Tense: Future}},
		{"correct horse battery staple", Profile{Syntax: OV, Tense: Future}},
		{"e", Profile{Syntax: VO, Tense: Present}},
	}
	for _, tc := range cases {
		if got := Derive(keys.Derive(tc.pass)); got != tc.want {
			t.Fatalf("Derive(%q): got %v want %v", tc.pass, got, tc.want)
		}
	}
}

func TestDeriveUsesControlBytes(t *testing.T) {
	var k keys.MasterKey
	k[24] = 7
	k[25] = 5
	p := Derive(k)
	if p.Syntax != OV || p.Tense != Future {
		t.Fatalf("unexpected profile %v", p)
	}
	k[24] = 8
	k[25] = 6
	p = Derive(k)
	if p.Syntax != VO || p.Tense != Past {
		t.Fatalf("unexpected profile %v", p)
	}
}

func TestProfileJSON(t *testing.T) {
	in := Profile{Syntax: OV, Tense: Future}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"syntax":"OV","tense":"future"}` {
		t.Fatalf("unexpected encoding %s", b)
	}
	var out Profile
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %v", out)
	}

	err = json.Unmarshal([]byte(`{"syntax":"SVO","tense":"past"}`), &out)
	if !errors.Is(err, ErrUnknownSyntax) {
		t.Fatalf("expected ErrUnknownSyntax, got %v", err)
	}
	err = json.Unmarshal([]byte(`{"syntax":"VO","tense":"pluperfect"}`), &out)
	if !errors.Is(err, ErrUnknownTense) {
		t.Fatalf("expected ErrUnknownTense, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := (Profile{Syntax: 9}).Validate(); !errors.Is(err, ErrUnknownSyntax) {
		t.Fatalf("expected ErrUnknownSyntax, got %v", err)
	}
	if err := (Profile{Tense: 9}).Validate(); !errors.Is(err, ErrUnknownTense) {
		t.Fatalf("expected ErrUnknownTense, got %v", err)
	}
	if err := (Profile{}).Validate(); err != nil {
		t.Fatalf("zero profile should be valid: %v", err)
	}
}
