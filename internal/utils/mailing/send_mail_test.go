package mailing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageWithAttachment(t *testing.T) {
	msg := BuildMessage("noreply@foodgram.io", "cook@example.com", "Shopping list", "see attached",
		Attachment{Filename: "foodgram-shopping-cart.txt", Content: []byte("flour g - 300")})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "To: cook@example.com")
	assert.Contains(t, raw, "Subject: Shopping list")
	assert.Contains(t, raw, `filename="foodgram-shopping-cart.txt"`)
}

func TestSendRejectsBadPort(t *testing.T) {
	m := &smtpMailer{config: MailConfig{SMTPHost: "localhost", SMTPPort: "not-a-port"}}
	assert.Error(t, m.Send("cook@example.com", "s", "b"))
}
