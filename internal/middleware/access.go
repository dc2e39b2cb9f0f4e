package middleware

import (
	"gmmarket/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// BlockedGuard refuses every update from a blocked user. Registration
// checks stay in the handlers since /start must remain reachable for
// new users.
func BlockedGuard(access *service.AccessService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			blocked, err := access.IsBlocked(sender.ID)
			if err != nil {
				logger.Error("Failed to check block flag", zap.Error(err))
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}

			if blocked {
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{
						Text:      "🚫 Вы заблокированы.",
						ShowAlert: true,
					})
				}
				return c.Send("🚫 Вы заблокированы и не можете использовать бот.")
			}

			return next(c)
		}
	}
}
