package screens

import (
	"context"
	"errors"

	"crmctl/internal/api"
	"crmctl/internal/crm"
	"crmctl/internal/session"
	"crmctl/pkg/logger"
)

// LoginFlow drives login, registration and logout against the session
// store.
type LoginFlow struct {
	client *api.Client
	store  *session.Store
}

// NewLoginFlow wires the flow to a client and a session store.
func NewLoginFlow(client *api.Client, store *session.Store) *LoginFlow {
	return &LoginFlow{client: client, store: store}
}

// Login authenticates and persists the session. Rejected credentials
// return api.ErrInvalidCredentials and never touch the store. A failed
// profile lookup does not block login: the session falls back to the SALES
// role and the submitted email as display name, matching the upstream
// behaviour.
func (f *LoginFlow) Login(ctx context.Context, email, password string) (session.Session, error) {
	token, err := f.client.Login(ctx, email, password)
	if err != nil {
		return session.Session{}, err
	}

	sess := session.Session{
		Token:    token,
		Role:     crm.RoleSales,
		FullName: email,
	}

	profile, err := f.client.Me(ctx, token)
	if err != nil {
		logger.L.Warn().Err(err).Msg("profile fetch failed, defaulting to SALES identity")
	} else {
		if profile.Role != "" {
			sess.Role = crm.Role(profile.Role).Normalize()
		}
		if profile.FullName != "" {
			sess.FullName = profile.FullName
		}
	}

	if err := f.store.Set(sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Register creates an account. It does not log the new user in.
func (f *LoginFlow) Register(ctx context.Context, fullName, email, password string, role crm.Role) error {
	role = role.Normalize()
	if role != crm.RoleAdmin && role != crm.RoleSales {
		return errors.New("screens: role must be ADMIN or SALES")
	}
	return f.client.Register(ctx, fullName, email, password, role)
}

// Logout clears token, role and name in one operation.
func (f *LoginFlow) Logout() error {
	return f.store.Clear()
}
