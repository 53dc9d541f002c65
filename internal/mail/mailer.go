// Package mail delivers transactional email. The server only sends
// one kind of message today: the OTP verification code.
package mail

import (
	"context"
	"fmt"
)

// Mailer sends a single message to one recipient. Implementations must
// return an error on delivery failure; callers treat a failed send as
// a failed operation, never as a partial success.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OTPSubject is the subject line of the verification message.
const OTPSubject = "Seamline verification code"

// OTPBody renders the plain-text body for a verification code.
func OTPBody(code string) string {
	return fmt.Sprintf(
		"Your verification code is: %s\r\n\r\n"+
			"Enter this code to activate your account. "+
			"If you did not request it, you can ignore this message.\r\n",
		code,
	)
}
