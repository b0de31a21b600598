package notification_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/courier/internal/notification"
)

// stubProvider supports a fixed set of channels and records sends.
type stubProvider struct {
	name     string
	channels map[notification.Channel]bool
	sent     []*notification.Notification
	err      error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Supports(ch notification.Channel) bool { return p.channels[ch] }

func (p *stubProvider) Send(_ context.Context, n *notification.Notification) (*notification.Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.sent = append(p.sent, n)
	return notification.SuccessResult(n.ID, p.name, notification.ChannelEmail), nil
}

func newStub(name string, channels ...notification.Channel) *stubProvider {
	m := make(map[notification.Channel]bool, len(channels))
	for _, ch := range channels {
		m[ch] = true
	}
	return &stubProvider{name: name, channels: m}
}

func emailNotification() *notification.Notification {
	rcpt := notification.NewRecipient("a@b.com", "", nil)
	return notification.New("", rcpt, "hello", "", nil)
}

func TestDispatch_SelectsSupportingProvider(t *testing.T) {
	reg := notification.NewRegistry(slog.Default())
	smsStub := newStub("sms-1", notification.ChannelSMS)
	emailStub := newStub("email-1", notification.ChannelEmail)
	reg.Register(smsStub)
	reg.Register(emailStub)

	res, err := reg.Dispatch(context.Background(), emailNotification(), notification.ChannelEmail)
	require.NoError(t, err)
	assert.Equal(t, "email-1", res.Provider)
	assert.Empty(t, smsStub.sent)
	assert.Len(t, emailStub.sent, 1)
}

func TestDispatch_FirstRegisteredWins(t *testing.T) {
	reg := notification.NewRegistry(slog.Default())
	first := newStub("email-first", notification.ChannelEmail)
	second := newStub("email-second", notification.ChannelEmail)
	reg.Register(first)
	reg.Register(second)

	// Dispatch is deterministic: same registration order, same pick.
	for i := 0; i < 5; i++ {
		res, err := reg.Dispatch(context.Background(), emailNotification(), notification.ChannelEmail)
		require.NoError(t, err)
		assert.Equal(t, "email-first", res.Provider)
	}
	assert.Empty(t, second.sent)
}

func TestDispatch_NoProviderRegistered(t *testing.T) {
	reg := notification.NewRegistry(slog.Default())
	reg.Register(newStub("sms-1", notification.ChannelSMS))

	_, err := reg.Dispatch(context.Background(), emailNotification(), notification.ChannelEmail)
	var perr *notification.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, notification.ProviderNone, perr.Provider)
	assert.Contains(t, perr.Message, "no provider registered for channel EMAIL")
}

func TestDispatch_PropagatesProviderError(t *testing.T) {
	reg := notification.NewRegistry(slog.Default())
	failing := newStub("email-broken", notification.ChannelEmail)
	failing.err = &notification.ProviderError{Provider: "email-broken", Message: "smtp down"}
	reg.Register(failing)

	_, err := reg.Dispatch(context.Background(), emailNotification(), notification.ChannelEmail)
	var perr *notification.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "email-broken", perr.Provider)
	assert.Equal(t, "smtp down", perr.Message)
}

func TestProviders_Listing(t *testing.T) {
	reg := notification.NewRegistry(slog.Default())
	reg.Register(newStub("multi", notification.ChannelEmail, notification.ChannelSlack))
	reg.Register(newStub("sms-1", notification.ChannelSMS))

	infos := reg.Providers()
	require.Len(t, infos, 2)
	assert.Equal(t, "multi", infos[0].Name)
	assert.ElementsMatch(t,
		[]notification.Channel{notification.ChannelEmail, notification.ChannelSlack},
		infos[0].Channels)
	assert.Equal(t, "sms-1", infos[1].Name)
}
