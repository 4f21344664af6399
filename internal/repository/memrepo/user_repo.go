package memrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
)

type UserRepository struct {
	v view
}

func (u *UserRepository) CreateUser(_ context.Context, user repoargs.CreateUser) (*domain.User, error) {
	var created domain.User
	err := u.v.write(func(d *data) error {
		if _, ok := d.usernames[user.Username]; ok {
			return wrapErr(domain.ErrDuplicateKey, "creating user")
		}
		role := user.Role
		if role == "" {
			role = domain.RoleUser
		}
		now := time.Now()
		d.lastUserID++
		created = domain.User{
			ID:        d.lastUserID,
			CreatedAt: now,
			UpdatedAt: now,
			Username:  user.Username,
			Password:  user.Password,
			Role:      role,
		}
		d.users[created.ID] = created
		d.usernames[created.Username] = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (u *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	var found domain.User
	err := u.v.read(func(d *data) error {
		id, ok := d.usernames[username]
		if !ok {
			return notFound("finding user by username %s", username)
		}
		found = d.users[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}
