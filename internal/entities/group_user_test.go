package entities

import "testing"

func TestNewGroupUser(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		permission Permission
		wantErr    bool
		errMsg     string
	}{
		{name: "valid admin", id: "alice", permission: PermissionAdmin},
		{name: "id kept verbatim", id: " Bob ", permission: PermissionUser},
		{name: "missing id", id: "", permission: PermissionOwner, wantErr: true, errMsg: "user ID is required"},
		{name: "invalid permission", id: "carol", permission: "root", wantErr: true, errMsg: `invalid permission for user carol: "root"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewGroupUser(tt.id, tt.permission)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGroupUser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if err.Error() != tt.errMsg {
					t.Errorf("NewGroupUser() error = %q, want %q", err.Error(), tt.errMsg)
				}
				return
			}
			if got.ID != tt.id || got.Permission != tt.permission {
				t.Errorf("NewGroupUser() = %+v, want {%s %s}", got, tt.id, tt.permission)
			}
		})
	}
}

func TestGroupUser_IsElevated(t *testing.T) {
	tests := []struct {
		permission Permission
		want       bool
	}{
		{permission: PermissionOwner, want: true},
		{permission: PermissionAdmin, want: true},
		{permission: PermissionUser, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.permission.String(), func(t *testing.T) {
			u := GroupUser{ID: "any_user_id", Permission: tt.permission}
			if got := u.IsElevated(); got != tt.want {
				t.Errorf("GroupUser.IsElevated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupUser_String(t *testing.T) {
	u := GroupUser{ID: "alice", Permission: PermissionOwner}
	if got := u.String(); got != "alice(owner)" {
		t.Errorf("GroupUser.String() = %v, want alice(owner)", got)
	}
}
