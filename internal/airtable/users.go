package airtable

import (
	"context"

	"github.com/ltemarine/shiplog/models"
)

// FindUserByEmail looks up a user record by exact email match. Returns
// ErrNotFound when no record matches. Enumeration is intentionally possible
// here: all valid users are pre-provisioned by an administrator, so a
// distinct "not found" answer is acceptable for this trust model.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	records, err := c.listAll(ctx, c.cfg.UsersTable, formulaEq(userFieldEmail, email))
	if err != nil {
		return models.User{}, err
	}
	if len(records) == 0 {
		return models.User{}, ErrNotFound
	}

	return userFromRecord(records[0]), nil
}

// ListUsers fetches the full user directory.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	records, err := c.listAll(ctx, c.cfg.UsersTable, "")
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(records))
	for _, rec := range records {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}

// CreateUser mirrors a locally created user to the remote directory and
// returns the remote record identifier.
func (c *Client) CreateUser(ctx context.Context, user models.User) (string, error) {
	rec, err := c.createRecord(ctx, c.cfg.UsersTable, userToFields(user))
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// UpdateUser patches the remote user row with the given record identifier.
func (c *Client) UpdateUser(ctx context.Context, recordID string, user models.User) error {
	_, err := c.updateRecord(ctx, c.cfg.UsersTable, recordID, userToFields(user))
	return err
}

// DeleteUser removes the remote user row.
func (c *Client) DeleteUser(ctx context.Context, recordID string) error {
	return c.deleteRecord(ctx, c.cfg.UsersTable, recordID)
}

func userToFields(user models.User) map[string]any {
	return map[string]any{
		userFieldName:  user.Name,
		userFieldEmail: user.Email,
		userFieldRole:  user.Role,
	}
}

func userFromRecord(rec record) models.User {
	role := fieldString(rec, userFieldRole)
	if role == "" {
		role = models.RoleVessel
	}

	return models.User{
		ID:     rec.ID,
		Name:   fieldString(rec, userFieldName),
		Email:  fieldString(rec, userFieldEmail),
		Role:   role,
		SortID: fieldInt(rec, userFieldSortID),
	}
}
