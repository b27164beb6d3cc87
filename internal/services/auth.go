package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/dbx"
	"github.com/dmitrijs2005/clinicdesk/internal/models"
	"github.com/dmitrijs2005/clinicdesk/internal/repositories/kv"
	"github.com/dmitrijs2005/clinicdesk/internal/session"
	"github.com/google/uuid"
)

// Auth implements AuthService over the local key-value store.
type Auth struct {
	db   *sql.DB
	sess *session.Manager
}

// NewAuth returns an auth service bound to db and sess.
func NewAuth(db *sql.DB, sess *session.Manager) *Auth {
	return &Auth{db: db, sess: sess}
}

func readUsers(ctx context.Context, st kv.Store) ([]models.User, error) {
	raw, ok, err := st.Get(ctx, common.KeyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.User{}, nil
	}
	var list []models.User
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		return []models.User{}, nil
	}
	return list, nil
}

// Register adds a new user record. Email uniqueness is checked case
// insensitively; a duplicate fails with common.ErrEmailAlreadyRegistered.
// Registration does not log the user in.
func (a *Auth) Register(ctx context.Context, creds Credentials) (*models.Principal, error) {
	user := models.User{
		ID:       uuid.NewString(),
		Email:    creds.Email,
		Password: creds.Password,
		Role:     models.RoleUser,
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st := kv.NewSQLiteStore(tx)
		list, err := readUsers(ctx, st)
		if err != nil {
			return err
		}
		for _, u := range list {
			if strings.EqualFold(u.Email, creds.Email) {
				return common.ErrEmailAlreadyRegistered
			}
		}
		b, err := json.Marshal(append(list, user))
		if err != nil {
			return fmt.Errorf("failed to marshal users: %w", err)
		}
		return st.Set(ctx, common.KeyUsers, string(b))
	})
	if err != nil {
		return nil, err
	}

	return &models.Principal{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// Login validates the credentials and, on success, stores the resulting
// principal as the current session. The built-in admin pair is checked
// before the users collection and is not backed by a stored record.
// Email comparison is case insensitive; the password must match exactly.
func (a *Auth) Login(ctx context.Context, creds Credentials) (*models.Principal, error) {
	if strings.EqualFold(creds.Email, common.AdminEmail) && creds.Password == common.AdminPassword {
		p := &models.Principal{ID: "admin", Email: common.AdminEmail, Role: models.RoleAdmin}
		if err := a.sess.SetCurrent(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	list, err := readUsers(ctx, kv.NewSQLiteStore(a.db))
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		if strings.EqualFold(u.Email, creds.Email) && u.Password == creds.Password {
			role := u.Role
			if role == "" {
				role = models.RoleUser
			}
			p := &models.Principal{ID: u.ID, Email: u.Email, Role: role}
			if err := a.sess.SetCurrent(ctx, p); err != nil {
				return nil, err
			}
			return p, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

// Logout clears the current session.
func (a *Auth) Logout(ctx context.Context) error {
	return a.sess.SetCurrent(ctx, nil)
}
