package rbac

type PermissionResponse struct {
	GrantedTo string `json:"grantedTo"`
	Object    string `json:"object"`
	Action    string `json:"action"`
}

type MyPermissionsResponse struct {
	Role        string               `json:"role"`
	Permissions []PermissionResponse `json:"permissions"`
}
