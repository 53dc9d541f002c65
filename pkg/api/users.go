package api

// CreateUserRequest is the body of POST /api/v1/users.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// UpdateUserRequest is the body of PUT /api/v1/users/{id}. Zero-value
// fields are left unchanged except Status, which is applied when set.
type UpdateUserRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Status   *string `json:"status,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UpdateRoleRequest is the body of PUT /api/v1/roles/{id}. Omitted
// fields are left unchanged.
type UpdateRoleRequest struct {
	Role        *string `json:"role,omitempty"`
	ShortName   *string `json:"shortName,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UserRoleItem is one element of the role-set replace body.
type UserRoleItem struct {
	RoleID int64 `json:"roleID"`
}

// ReplaceUserRolesRequest is the body of PUT /api/v1/user-roles/userID/{userID}.
type ReplaceUserRolesRequest struct {
	Items []UserRoleItem `json:"items"`
}
