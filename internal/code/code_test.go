package code

import "testing"

func TestGenerateMatchesOwnPattern(t *testing.T) {
	for _, kind := range []Kind{Admin, Player, Invite} {
		value, err := Generate(kind)
		if err != nil {
			t.Fatalf("generate %s: %v", kind, err)
		}
		if len(value) != Length {
			t.Fatalf("expected length %d, got %d (%q)", Length, len(value), value)
		}
		if value[0] != byte(kind) {
			t.Fatalf("expected prefix %q, got %q", byte(kind), value[0])
		}
		if !Valid(kind, value) {
			t.Fatalf("expected %q to match %s pattern", value, kind)
		}
		if !Valid(Any, value) {
			t.Fatalf("expected %q to match any pattern", value)
		}
		got, ok := KindOf(value)
		if !ok || got != kind {
			t.Fatalf("expected kind %s, got %s (ok=%v)", kind, got, ok)
		}
	}
}

func TestGenerateRejectsAny(t *testing.T) {
	if _, err := Generate(Any); err == nil {
		t.Fatal("expected error generating a code of kind any")
	}
}

func TestGenerateIsDistinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		value, err := Generate(Player)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, dup := seen[value]; dup {
			t.Fatalf("duplicate code %q", value)
		}
		seen[value] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		kind  Kind
		value string
		want  bool
	}{
		{Admin, "Aabcdefghij12345", true},
		{Admin, "Pabcdefghij12345", false},
		{Player, "Pabcdefghij12345", true},
		{Invite, "Iabcdefghij1234", false},
		{Invite, "Iabcdefghij123456", false},
		{Invite, "Iabcdefghij-2345", false},
		{Any, "Iabcdefghij12345", true},
		{Any, "Xabcdefghij12345", false},
		{Any, "", false},
	}
	for _, tc := range cases {
		if got := Valid(tc.kind, tc.value); got != tc.want {
			t.Fatalf("Valid(%s, %q): expected %v, got %v", tc.kind, tc.value, tc.want, got)
		}
	}
}

func TestKindOfMalformed(t *testing.T) {
	if _, ok := KindOf("not-a-code"); ok {
		t.Fatal("expected malformed code to have no kind")
	}
}
