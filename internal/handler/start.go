package handler

import (
	"fmt"

	"gmmarket/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start: greets registered users, opens the
// registration flow for everyone else
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID
	h.states.Clear(userID)

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	user, err := h.access.GetUser(userID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Error(err))
		return c.Send(msgInternalError)
	}

	if user != nil {
		return c.Send(
			fmt.Sprintf(
				"👋 С возвращением, %s!\n\n🎮 Это бот для торговли в Grand Mobile.\nВыберите действие:",
				user.GameNick,
			),
			h.menuFor(userID),
		)
	}

	h.states.Set(userID, &domain.State{
		Flow: domain.FlowRegistration,
		Step: domain.StepRegNick,
	})

	return c.Send(
		"👋 Добро пожаловать в Grand Mobile Market!\n\n"+
			"🎮 Здесь вы можете покупать и продавать игровое имущество.\n\n"+
			"📝 Для начала нужно пройти регистрацию.\n\n"+
			"🕹 Введите ваш игровой ник:",
		cancelMarkup(),
	)
}

// processRegNick collects the game nick, first step of registration
func (h *Handler) processRegNick(c tele.Context, st *domain.State, nick string) error {
	if err := domain.ValidateNick(nick); err != nil {
		return c.Send("❌ Ник должен быть от 2 до 32 символов.\nПопробуйте снова:")
	}

	st.Step = domain.StepRegGameID
	st.RegNick = nick
	h.states.Set(c.Sender().ID, st)

	return c.Send(fmt.Sprintf(
		"✅ Отлично, %s!\n\n📞 Теперь введите ваш игровой номер (ID)\n(используется для связи с покупателями):",
		nick,
	))
}

// processRegGameID collects the game ID and commits the registration
func (h *Handler) processRegGameID(c tele.Context, st *domain.State, gameID string) error {
	if err := domain.ValidateGameID(gameID); err != nil {
		return c.Send("❌ ID должен быть от 1 до 20 символов.\nПопробуйте снова:")
	}

	userID := c.Sender().ID
	username := c.Sender().Username

	if err := h.access.Register(userID, username, st.RegNick, gameID); err != nil {
		if err == domain.ErrDuplicateUser {
			h.states.Clear(userID)
			return c.Send("Вы уже зарегистрированы. Отправьте /start.")
		}
		h.logger.Error("Failed to register user", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgInternalError)
	}

	h.logger.Info("User registered",
		zap.Int64("user_id", userID),
		zap.String("game_nick", st.RegNick),
	)

	nick := st.RegNick
	h.states.Clear(userID)

	return c.Send(
		fmt.Sprintf(
			"🎉 Регистрация завершена!\n\n🕹 Игровой ник: %s\n📞 Игровой ID: %s\n\nТеперь вы можете размещать и просматривать объявления!",
			nick, gameID,
		),
		h.menuFor(userID),
	)
}
