package auth

import (
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:TEST-TOKEN"

func signedInitData(t *testing.T, token string, authDate time.Time, user string) string {
	t.Helper()
	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("query_id", "AAH-test")
	if user != "" {
		values.Set("user", user)
	}
	values.Set("hash", Sign(values, token))
	return values.Encode()
}

func TestValidate_Success(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	initData := signedInitData(t, testBotToken, now.Add(-time.Minute), `{"id":42,"first_name":"Aziz","language_code":"uz"}`)

	user, err := Validate(initData, testBotToken, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "Aziz", user.FirstName)
	assert.Equal(t, "uz", user.LanguageCode)
}

func TestValidate_WrongToken(t *testing.T) {
	now := time.Now()
	initData := signedInitData(t, "other:token", now, `{"id":42}`)

	_, err := Validate(initData, testBotToken, time.Hour, now)
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestValidate_TamperedField(t *testing.T) {
	now := time.Now()
	initData := signedInitData(t, testBotToken, now, `{"id":42}`)

	values, err := url.ParseQuery(initData)
	require.NoError(t, err)
	values.Set("user", `{"id":43}`)

	_, err = Validate(values.Encode(), testBotToken, time.Hour, now)
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestValidate_Expired(t *testing.T) {
	now := time.Now()
	initData := signedInitData(t, testBotToken, now.Add(-48*time.Hour), `{"id":42}`)

	_, err := Validate(initData, testBotToken, 24*time.Hour, now)
	assert.ErrorIs(t, err, ErrExpired)

	_, err = Validate(initData, testBotToken, 0, now)
	assert.NoError(t, err)
}

func TestValidate_MissingHashAndUser(t *testing.T) {
	_, err := Validate("auth_date=1", testBotToken, 0, time.Now())
	assert.ErrorIs(t, err, ErrMissingHash)

	initData := signedInitData(t, testBotToken, time.Now(), "")
	_, err = Validate(initData, testBotToken, 0, time.Now())
	assert.ErrorIs(t, err, ErrMissingUser)
}
