package user

// ClubInfo mirrors the club fields exposed on user payloads.
type ClubInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Profile is the user payload shared by /me, auth responses and the
// club-user administration endpoints.
type Profile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Club      *ClubInfo `json:"club"`
}

func NewProfile(u *ClubUser) Profile {
	p := Profile{
		ID:        u.ID,
		Name:      u.DisplayName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
	}
	if u.Club != nil {
		p.Club = &ClubInfo{ID: u.Club.ID, Name: u.Club.Name, Slug: u.Club.Slug}
	}
	return p
}

// UpdateUserRequest is the admin PATCH payload for a club user. Email changes
// re-check uniqueness and keep username in sync.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
}
