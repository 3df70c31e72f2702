package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Clube Central", "clube-central"},
		{"  Tennis  Club  ", "tennis-club"},
		{"ALREADY-SLUGGED", "already-slugged"},
		{"Açaí & Tênis!", "a-a-t-nis"},
		{"club123", "club123"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("wrong password should not verify")
	}
}
