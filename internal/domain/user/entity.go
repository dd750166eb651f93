package user

// NotificationPreferences controls which emails the user receives
type NotificationPreferences struct {
	Orders     bool `json:"orders"`
	Offers     bool `json:"offers"`
	Promotions bool `json:"promotions"`
}

// Preferences are the user's account settings
type Preferences struct {
	Language      string                  `json:"language"`
	Notifications NotificationPreferences `json:"notifications"`
}

// Profile is the signed-in user's account record
type Profile struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Avatar      string      `json:"avatar,omitempty"`
	Mobile      string      `json:"mobile,omitempty"`
	DOB         string      `json:"dob,omitempty"`
	Gender      string      `json:"gender,omitempty"`
	IsVerified  bool        `json:"isVerified,omitempty"`
	Preferences Preferences `json:"preferences"`
	Role        string      `json:"role,omitempty"`
}

// UpdateProfileRequest changes editable profile fields
type UpdateProfileRequest struct {
	Name        string       `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Mobile      string       `json:"mobile,omitempty" binding:"omitempty,len=10,numeric"`
	DOB         string       `json:"dob,omitempty"`
	Gender      string       `json:"gender,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}
