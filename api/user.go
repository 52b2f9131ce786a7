package api

import (
	"fmt"
)

// User is a signed-in identity. UID is the opaque id beverages are owned by.
type User struct {
	ID int `json:"id"`

	CreatedTs int64 `json:"createdTs"`
	UpdatedTs int64 `json:"updatedTs"`

	// Domain specific fields
	UID          string `json:"uid"`
	Name         string `json:"username"`
	Nickname     string `json:"nickname"`
	PasswordHash string `json:"-"`
}

type UserFind struct {
	ID *int `json:"id"`

	UID  *string `json:"uid"`
	Name *string `json:"username"`
}

type UserCreate struct {
	// Domain specific fields
	UID          string
	Name         string `json:"username"`
	Nickname     string `json:"nickname"`
	Password     string `json:"password"`
	PasswordHash string
}

func (create UserCreate) Validate() error {
	if len(create.Name) < 3 {
		return fmt.Errorf("username is too short, minimum length is 3")
	}
	if len(create.Name) > 32 {
		return fmt.Errorf("username is too long, maximum length is 32")
	}
	if len(create.Password) < 3 {
		return fmt.Errorf("password is too short, minimum length is 3")
	}
	if len(create.Password) > 512 {
		return fmt.Errorf("password is too long, maximum length is 512")
	}
	if len(create.Nickname) > 64 {
		return fmt.Errorf("nickname is too long, maximum length is 64")
	}
	return nil
}

type SignIn struct {
	Name string `json:"username"`
	Pass string `json:"password"`
}

type SignUp struct {
	Name string `json:"username"`
	Pass string `json:"password"`
}
