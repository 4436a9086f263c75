package email

import (
	"errors"
	"testing"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (r *recordingSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, params)
	return &resend.SendEmailResponse{Id: "test"}, nil
}

func newTestClient(s sender) *Client {
	logger := zerolog.Nop()
	c := NewClient(&config.Config{Integration: config.IntegrationConfig{EmailFrom: "Contacts <hi@example.com>"}}, &logger)
	c.emails = s
	return c
}

func TestRender_Welcome(t *testing.T) {
	html, err := Render(TemplateWelcome, map[string]string{"UserName": "<Bob>"})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi &lt;Bob&gt;,")
}

func TestPreview(t *testing.T) {
	html, err := Preview(TemplateWelcome)
	require.NoError(t, err)
	assert.Contains(t, html, "Alice A")

	_, err = Preview("missing")
	assert.Error(t, err)
}

func TestSendWelcomeEmail(t *testing.T) {
	s := &recordingSender{}
	c := newTestClient(s)

	require.NoError(t, c.SendWelcomeEmail("alice@example.com", "Alice A"))
	require.Len(t, s.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, s.sent[0].To)
	assert.Equal(t, "Contacts <hi@example.com>", s.sent[0].From)
	assert.Contains(t, s.sent[0].Html, "Alice A")
}

func TestSendEmail_ProviderError(t *testing.T) {
	c := newTestClient(&recordingSender{err: errors.New("rate limited")})

	err := c.SendWelcomeEmail("alice@example.com", "Alice A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSendEmail_DisabledWithoutKey(t *testing.T) {
	logger := zerolog.Nop()
	c := NewClient(&config.Config{}, &logger)

	assert.False(t, c.Enabled())
	assert.NoError(t, c.SendWelcomeEmail("alice@example.com", "Alice A"))
}
