package recordstore

import (
	"context"
	"net/http"
	"net/url"

	"somadhan-booking/constants"
	"somadhan-booking/logger"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignIn performs a password sign-in against the store's auth endpoint and
// persists the session token when a session store is attached.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	query := url.Values{}
	query.Set("grant_type", "password")

	var resp signInResponse
	err := c.do(ctx, http.MethodPost, "/auth/v1/token", query, signInRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return Session{}, err
	}

	c.mu.Lock()
	c.token = resp.AccessToken
	c.mu.Unlock()

	if c.sessions != nil {
		if err := c.sessions.Save(resp.AccessToken); err != nil {
			logger.Warning("Failed to persist admin session: " + err.Error())
		}
	}

	return Session{
		AccessToken: resp.AccessToken,
		UserID:      resp.User.ID,
		Email:       resp.User.Email,
	}, nil
}

// SignOut terminates the store session and clears the persisted token.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil)

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if c.sessions != nil {
		if clearErr := c.sessions.Clear(); clearErr != nil {
			logger.Warning("Failed to clear persisted admin session: " + clearErr.Error())
		}
	}
	return err
}

type adminRow struct {
	UserID string `json:"user_id"`
}

// IsAdmin reports whether the signed-in identity appears in the admins
// collection. Dashboard access is denied without a row here, regardless of
// a successful credential sign-in.
func (c *Client) IsAdmin(ctx context.Context, userID string) (bool, error) {
	query := url.Values{}
	query.Set("select", "user_id")
	query.Set("user_id", "eq."+userID)
	query.Set("limit", "1")

	var rows []adminRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/"+constants.CollectionAdmins, query, nil, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
