package notification_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/courier/internal/notification"
)

func TestNew_Defaults(t *testing.T) {
	rcpt := notification.NewRecipient("a@b.com", "", nil)
	n := notification.New("", rcpt, "hello", "", nil)

	_, err := uuid.Parse(n.ID)
	assert.NoError(t, err, "blank id should get a generated UUID")
	assert.Equal(t, notification.PriorityNormal, n.Priority)
	assert.Nil(t, n.Variables, "nil variables stay nil, meaning no context supplied")
}

func TestNew_ExplicitValuesKept(t *testing.T) {
	rcpt := notification.NewRecipient("a@b.com", "", nil)
	n := notification.New("id-1", rcpt, "hello", notification.PriorityCritical, map[string]string{"k": "v"})

	assert.Equal(t, "id-1", n.ID)
	assert.Equal(t, notification.PriorityCritical, n.Priority)
	assert.Equal(t, "v", n.Variables["k"])
}

func TestNew_VariablesCopied(t *testing.T) {
	vars := map[string]string{"name": "Sam"}
	n := notification.New("", notification.NewRecipient("a@b.com", "", nil), "hi", "", vars)

	vars["name"] = "mutated"
	assert.Equal(t, "Sam", n.Variables["name"], "caller mutations must not leak into the notification")
}

func TestNewRecipient_MetadataCopied(t *testing.T) {
	meta := map[string]string{"deviceToken": "tok"}
	r := notification.NewRecipient("", "", meta)

	meta["deviceToken"] = "mutated"
	assert.Equal(t, "tok", r.Meta("deviceToken"))
	assert.Equal(t, "", r.Meta("unknown"))
}

func TestRecipient_MetaNilSafe(t *testing.T) {
	var r *notification.Recipient
	assert.Equal(t, "", r.Meta("anything"))
}

func TestWithMessage_LeavesOriginalUntouched(t *testing.T) {
	n := notification.New("id-1", notification.NewRecipient("a@b.com", "", nil), "Hello {{name}}", "", map[string]string{"name": "Sam"})
	expanded := n.WithMessage("Hello Sam")

	assert.Equal(t, "Hello {{name}}", n.Message)
	assert.Equal(t, "Hello Sam", expanded.Message)
	assert.Equal(t, n.ID, expanded.ID)
	assert.Equal(t, n.Variables, expanded.Variables)
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in      string
		want    notification.Channel
		wantErr bool
	}{
		{"EMAIL", notification.ChannelEmail, false},
		{"email", notification.ChannelEmail, false},
		{" sms ", notification.ChannelSMS, false},
		{"Push", notification.ChannelPush, false},
		{"SLACK", notification.ChannelSlack, false},
		{"", "", true},
		{"fax", "", true},
	}
	for _, tt := range tests {
		got, err := notification.ParseChannel(tt.in)
		if tt.wantErr {
			var invalid *notification.InvalidArgumentError
			require.ErrorAs(t, err, &invalid, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, notification.PriorityLow, notification.ParsePriority("low"))
	assert.Equal(t, notification.PriorityHigh, notification.ParsePriority(" HIGH "))
	assert.Equal(t, notification.PriorityCritical, notification.ParsePriority("Critical"))
	assert.Equal(t, notification.PriorityNormal, notification.ParsePriority(""))
	assert.Equal(t, notification.PriorityNormal, notification.ParsePriority("urgent-ish"))
}

func TestResultFactories(t *testing.T) {
	ok := notification.SuccessResult("id-1", "email", notification.ChannelEmail)
	assert.True(t, ok.Success)
	assert.Equal(t, "id-1", ok.NotificationID)
	assert.Equal(t, "email", ok.Provider)
	assert.Empty(t, ok.Error)
	assert.False(t, ok.Timestamp.IsZero())

	bad := notification.FailureResult("id-2", "sms", notification.ChannelSMS, "boom")
	assert.False(t, bad.Success)
	assert.Equal(t, "boom", bad.Error)
}
