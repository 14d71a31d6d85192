package bot

import (
	"encoding/json"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/akazantsev/kopilka/internal/charts"
	"github.com/akazantsev/kopilka/internal/model"
	"github.com/akazantsev/kopilka/internal/service"
)

// userState хранит текущее состояние диалога с пользователем
type userState struct {
	TransactionType model.TransactionType
	CategoryKey     string
}

type Bot struct {
	api     *tgbotapi.BotAPI
	tracker *service.FinanceTracker
	charts  *charts.ChartGenerator
	states  map[int64]*userState // состояния пользователей по их ID
}

func NewBot(token string, tracker *service.FinanceTracker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		tracker: tracker,
		charts:  charts.NewChartGenerator(),
		states:  make(map[int64]*userState),
	}, nil
}

// Start запускает бота в режиме long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Логируем ошибку, но продолжаем работу
			logrus.Errorf("error handling update: %v", err)
		}
	}

	return nil
}

// HandleWebhook — точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	return b.handleMessage(update.Message)
}

// userID превращает Telegram ID в строковый ключ пользователя хранилища.
// Веб-клиент использует uid из своей авторизации, бот — идентификатор чата;
// для движков расчета оба непрозрачны.
func userID(tgID int64) string {
	return strconv.FormatInt(tgID, 10)
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.api.Send(msg)
}
