package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
)

// ErrInvalidInitData is returned when Telegram web-app init data fails verification
var ErrInvalidInitData = errors.New("invalid telegram init data")

// TelegramUser is the user object embedded in web-app init data
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// VerifyInitData checks the signature and age of Telegram web-app init data
// and returns the embedded user.
func VerifyInitData(initData, botToken string, maxAge time.Duration, now time.Time) (*TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}
	if values.Get("hash") == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrInvalidInitData)
	}

	// ValidateWebappRequest unescapes every value itself, so it gets the
	// fields in their wire form rather than the decoded ones.
	wire := make(url.Values, len(values))
	for k := range values {
		wire.Set(k, url.QueryEscape(values.Get(k)))
	}

	u, ok := bot.ValidateWebappRequest(wire, botToken)
	if !ok {
		return nil, fmt.Errorf("%w: hash mismatch", ErrInvalidInitData)
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", ErrInvalidInitData)
	}
	if maxAge > 0 && now.Sub(time.Unix(authDate, 0)) > maxAge {
		return nil, fmt.Errorf("%w: expired", ErrInvalidInitData)
	}

	if u == nil || u.ID == 0 {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidInitData)
	}
	return &TelegramUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}, nil
}
