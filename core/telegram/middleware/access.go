package middleware

import tele "gopkg.in/telebot.v4"

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	AdminIDs []int64
	OnReject tele.HandlerFunc
}

func (o AdminOptions) allowed(userID int64) bool {
	for _, id := range o.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// WithAdminCheck wraps a command handler enforcing admin-only execution when required.
func WithAdminCheck(opts AdminOptions, cmd struct {
	AdminOnly bool
	Handler   tele.HandlerFunc
}) tele.HandlerFunc {
	if !cmd.AdminOnly || len(opts.AdminIDs) == 0 {
		return cmd.Handler
	}
	return func(c tele.Context) error {
		if c.Sender() == nil || !opts.allowed(c.Sender().ID) {
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
		return cmd.Handler(c)
	}
}

// AdminOnlyMiddleware ensures that only configured admins can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if len(opts.AdminIDs) > 0 && (c.Sender() == nil || !opts.allowed(c.Sender().ID)) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
