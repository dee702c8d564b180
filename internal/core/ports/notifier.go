package ports

import "context"

// WelcomeSender delivers a single welcome message with the account's initial
// credentials. Implemented by the SMTP transport.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, email, username, password string) error
}

// WelcomeNotifier is the fire-and-forget post-commit side channel. Notify
// never blocks the caller and its failures never affect an import's result.
type WelcomeNotifier interface {
	Notify(email, username, password string)
}
