package notification_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/courier/internal/notification"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last@example.co.uk", true},
		{"user_name+tag@sub.domain.org", true},
		{"x&y*z-q@mail.example.io", true},
		{"", false},
		{"   ", false},
		{"no-at-sign.example.com", false},
		{"double@@example.com", false},
		{"user@example", false},
		{"user@example.c", false},     // TLD too short
		{"user@example.c0m", false},   // TLD must be alphabetic
		{".leadingdot@example.com", false},
		{"trailingdot.@example.com", false},
		{"user@-example.com", true},   // label content is permissive, only shape is checked
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, notification.IsValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestIsValidEmail_LengthLimit(t *testing.T) {
	local := make([]byte, 250)
	for i := range local {
		local[i] = 'a'
	}
	assert.False(t, notification.IsValidEmail(string(local)+"@example.com"))
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+14155552671", true},
		{"14155552671", true},
		{"+1 (415) 555-2671", true}, // separators stripped
		{"12345678", true},          // 8 digits, minimum
		{"123456789012345", true},   // 15 digits, maximum
		{"", false},
		{"   ", false},
		{"+0123456789", false}, // first digit must be 1-9
		{"1234567", false},     // too short
		{"1234567890123456", false}, // too long
		{"+1415abc2671", false},
		{"++14155552671", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, notification.IsValidPhone(tt.phone), "phone %q", tt.phone)
	}
}

func TestValidate_FailFastOrder(t *testing.T) {
	t.Run("nil notification", func(t *testing.T) {
		err := notification.Validate(nil, notification.ChannelEmail)
		var invalid *notification.InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "notification", invalid.Name)
	})

	t.Run("unknown channel", func(t *testing.T) {
		n := notification.New("", notification.NewRecipient("a@b.com", "", nil), "hi", "", nil)
		err := notification.Validate(n, notification.Channel("CARRIER_PIGEON"))
		var invalid *notification.InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "channel", invalid.Name)
	})

	t.Run("blank message checked before recipient", func(t *testing.T) {
		n := notification.New("", nil, "   ", "", nil)
		err := notification.Validate(n, notification.ChannelEmail)
		var verr *notification.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "message", verr.Field)
	})

	t.Run("missing recipient", func(t *testing.T) {
		n := notification.New("", nil, "hello", "", nil)
		err := notification.Validate(n, notification.ChannelEmail)
		var verr *notification.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "recipient", verr.Field)
	})
}

func TestValidate_ChannelPreconditions(t *testing.T) {
	tests := []struct {
		name      string
		recipient *notification.Recipient
		channel   notification.Channel
		wantField string // "" means validation passes
	}{
		{
			name:      "email ok",
			recipient: notification.NewRecipient("a@b.com", "", map[string]string{"subject": "Hi"}),
			channel:   notification.ChannelEmail,
		},
		{
			name:      "email missing",
			recipient: notification.NewRecipient("", "+14155552671", nil),
			channel:   notification.ChannelEmail,
			wantField: "email",
		},
		{
			name:      "email malformed",
			recipient: notification.NewRecipient("not-an-email", "", nil),
			channel:   notification.ChannelEmail,
			wantField: "email",
		},
		{
			name:      "sms ok",
			recipient: notification.NewRecipient("", "+14155552671", nil),
			channel:   notification.ChannelSMS,
		},
		{
			name:      "sms missing phone on empty recipient",
			recipient: notification.NewRecipient("", "", nil),
			channel:   notification.ChannelSMS,
			wantField: "phone",
		},
		{
			name:      "push ok",
			recipient: notification.NewRecipient("", "", map[string]string{"deviceToken": "tok-1"}),
			channel:   notification.ChannelPush,
		},
		{
			name:      "push blank deviceToken",
			recipient: notification.NewRecipient("", "", map[string]string{"deviceToken": ""}),
			channel:   notification.ChannelPush,
			wantField: "deviceToken",
		},
		{
			name:      "slack ok",
			recipient: notification.NewRecipient("", "", map[string]string{"slackChannelId": "C123"}),
			channel:   notification.ChannelSlack,
		},
		{
			name:      "slack missing channel id",
			recipient: notification.NewRecipient("", "", map[string]string{}),
			channel:   notification.ChannelSlack,
			wantField: "slackChannelId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := notification.New("", tt.recipient, "hello", "", nil)
			err := notification.Validate(n, tt.channel)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *notification.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidate_ErrorKindsAreDisjoint(t *testing.T) {
	n := notification.New("", notification.NewRecipient("", "", nil), "hello", "", nil)
	err := notification.Validate(n, notification.ChannelSMS)

	var verr *notification.ValidationError
	assert.True(t, errors.As(err, &verr))

	var invalid *notification.InvalidArgumentError
	assert.False(t, errors.As(err, &invalid))

	var perr *notification.ProviderError
	assert.False(t, errors.As(err, &perr))
}
