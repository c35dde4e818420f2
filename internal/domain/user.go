package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	Lists     []List    `json:"lists" bson:"lists"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// List is a named, ordered collection of artwork ids owned by one user.
type List struct {
	Name     string  `json:"name" bson:"name"`
	Artworks []int64 `json:"artworks" bson:"artworks"`
}

type ListSummary struct {
	Name string `json:"name" bson:"name"`
	Size int    `json:"size" bson:"size"`
}

func NewUser(username, password string) *User {
	return &User{
		Username:  username,
		Password:  password,
		Lists:     make([]List, 0),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func NewList(name string) List {
	return List{Name: name, Artworks: make([]int64, 0)}
}

// HashPassword replaces the plain password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) List(name string) (*List, bool) {
	for i := range u.Lists {
		if u.Lists[i].Name == name {
			return &u.Lists[i], true
		}
	}
	return nil, false
}

func (u *User) Summaries() []ListSummary {
	out := make([]ListSummary, 0, len(u.Lists))
	for _, l := range u.Lists {
		out = append(out, ListSummary{Name: l.Name, Size: len(l.Artworks)})
	}
	return out
}

func (u *User) Clone() *User {
	c := *u
	c.Lists = make([]List, 0, len(u.Lists))
	for _, l := range u.Lists {
		c.Lists = append(c.Lists, l.Clone())
	}
	return &c
}

func (l List) Clone() List {
	return List{Name: l.Name, Artworks: append(make([]int64, 0, len(l.Artworks)), l.Artworks...)}
}

// Remove drops every occurrence of id.
func (l *List) Remove(id int64) {
	kept := make([]int64, 0, len(l.Artworks))
	for _, a := range l.Artworks {
		if a != id {
			kept = append(kept, a)
		}
	}
	l.Artworks = kept
}
