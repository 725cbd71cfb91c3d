package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Name        string
	Email       string
	Password    string
	Role        string
	AvatarURL   string
	Bio         string
	Website     string
	IsActive    string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Name:        "name",
	Email:       "email",
	Password:    "passwordhash",
	Role:        "role",
	AvatarURL:   "avatarurl",
	Bio:         "bio",
	Website:     "website",
	IsActive:    "isactive",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Password, t.Role, t.AvatarURL, t.Bio,
		t.Website, t.IsActive, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
