package user

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		u    ClubUser
		want string
	}{
		{"full name wins", ClubUser{FirstName: "Ana", LastName: "Souza", Username: "ana", Email: "ana@club.test"}, "Ana Souza"},
		{"first name only", ClubUser{FirstName: "Ana", Username: "ana"}, "Ana"},
		{"falls back to username", ClubUser{Username: "ana", Email: "ana@club.test"}, "ana"},
		{"falls back to email", ClubUser{Email: "ana@club.test"}, "ana@club.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.u.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	if !(&ClubUser{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role should report IsAdmin")
	}
	if (&ClubUser{Role: RolePlayer}).IsAdmin() {
		t.Error("player role should not report IsAdmin")
	}
}
