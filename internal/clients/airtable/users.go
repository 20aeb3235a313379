package airtable

import (
	"context"
	"fmt"
	"strings"

	"github.com/samandr77/microservices/advances/internal/entity"
)

// Column names of the users table.
const (
	ColUsername = "Username"
	ColPassword = "Password"
	ColUserName = "Name"
	ColRole     = "Role"
)

type UsersDirectory struct {
	t *Table
}

func NewUsersDirectory(c *Client, tableID string) *UsersDirectory {
	return &UsersDirectory{t: c.Table(tableID)}
}

// FindUser returns the first user whose username and password both match
// exactly. Both values are escaped into the filter formula.
func (d *UsersDirectory) FindUser(ctx context.Context, username, password string) (entity.User, error) {
	q := Query{
		FilterByFormula: And(Eq(ColUsername, username), Eq(ColPassword, password)),
		MaxRecords:      1,
	}

	var first *RemoteRecord

	for page, err := range d.t.Pages(ctx, q) {
		if err != nil {
			return entity.User{}, fmt.Errorf("find user: %w", err)
		}

		if len(page.Records) > 0 {
			first = &page.Records[0]
		}

		break
	}

	if first == nil {
		return entity.User{}, entity.ErrInvalidCredentials
	}

	return UserFromRemote(*first), nil
}

// UserFromRemote lower-cases the role and falls back to the team role.
func UserFromRemote(r RemoteRecord) entity.User {
	role := strings.ToLower(stringField(r.Fields, ColRole))
	if role == "" {
		role = entity.RoleTeam.String()
	}

	return entity.User{
		Name:     stringField(r.Fields, ColUserName),
		Username: stringField(r.Fields, ColUsername),
		Role:     entity.UserRole(role),
	}
}
