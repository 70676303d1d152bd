package userservice

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/globalaffair/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid email or password")
)

func NewUserService(db *mongo.Database, c *common.Cache, tokens *TokenManager) *UserService {
	return &UserService{
		m:      newUserModel(db),
		c:      c,
		tokens: tokens,
	}
}

// CreateUser creates a new user account with the USER role.
func (s *UserService) CreateUser(ctx context.Context, fullName, email, password string) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	v := common.NewValidator()
	validateFullName(v, fullName)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		FullName:        fullName,
		Email:           email,
		ProfileImageURL: DefaultProfileImageURL,
		Role:            RoleUser,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the credentials and returns a signed identity token.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	v := common.NewValidator()
	validateEmail(v, email)
	validateLoginPassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return s.tokens.Issue(user)
}

// GetUsersByIDs resolves user references in one round-trip for the ids that are not cached yet.
// Ids that name no user are left out of the result.
func (s *UserService) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*User, error) {
	users := make(map[primitive.ObjectID]*User, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))

	var missing []primitive.ObjectID
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if v, ok := s.c.Get(common.CacheKeyUser(id.Hex())); ok {
			users[id] = v.(*User)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return users, nil
	}

	found, err := s.m.getUsersByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	for i := range found {
		u := &found[i]
		users[u.ID] = u
		s.c.Set(common.CacheKeyUser(u.ID.Hex()), u)
	}

	return users, nil
}
