package userservice

import "go.mongodb.org/mongo-driver/bson/primitive"

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanModify reports whether u may change a document created by owner.
func (u *User) CanModify(owner primitive.ObjectID) bool {
	if u.IsAnonymous() {
		return false
	}

	return u.ID == owner || u.IsAdmin()
}
