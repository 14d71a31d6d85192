package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akazantsev/kopilka/internal/model"
	"github.com/akazantsev/kopilka/internal/service"
)

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "add":
		b.handleAdd(message)
	case "chart":
		b.handleChart(message)
	case "report":
		b.handleReport(message)
	case "budget":
		b.handleBudget(message)
	case "wishlist":
		b.handleWishlist(message)
	}
	return nil
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID,
		"Добро пожаловать в Копилку! 💰\n\n"+
			"Я помогу следить за деньгами. Вот что я умею:\n\n"+
			"• /add — записать доход или расход\n"+
			"• /chart — график по дням\n"+
			"• /report — отчет по категориям\n"+
			"• /budget — использование бюджетов\n"+
			"• /wishlist — прогресс целей накопления\n\n"+
			"Выберите действие:")
	msg.ReplyMarkup = b.getMainKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleAdd(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "Что добавить?")
	msg.ReplyMarkup = b.getTypeKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID

	switch {
	case callback.Data == "add_income":
		msg := tgbotapi.NewMessage(chatID, "Выберите категорию дохода:")
		msg.ReplyMarkup = b.getCategoriesKeyboard(model.TypeIncome)
		b.api.Send(msg)
	case callback.Data == "add_expense":
		msg := tgbotapi.NewMessage(chatID, "Выберите категорию расхода:")
		msg.ReplyMarkup = b.getCategoriesKeyboard(model.TypeExpense)
		b.api.Send(msg)
	case strings.HasPrefix(callback.Data, "cat_"):
		// cat_<type>_<key>
		parts := strings.SplitN(strings.TrimPrefix(callback.Data, "cat_"), "_", 2)
		if len(parts) == 2 {
			b.states[callback.From.ID] = &userState{
				TransactionType: model.TransactionType(parts[0]),
				CategoryKey:     parts[1],
			}
			cat := model.LookupCategory(parts[1], model.TransactionType(parts[0]))
			msg := tgbotapi.NewMessage(chatID,
				fmt.Sprintf("Категория: %s\nВведите сумму и название в формате:\n50000 Обед в кафе", cat.Name))
			b.api.Send(msg)
		}
	case strings.HasPrefix(callback.Data, "chart_"):
		days, err := strconv.Atoi(strings.TrimPrefix(callback.Data, "chart_"))
		if err == nil {
			b.sendChart(chatID, callback.From.ID, service.Window(days))
		}
	}

	// Отвечаем на callback, чтобы убрать loading indicator
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))
	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	state, exists := b.states[message.From.ID]
	if !exists {
		// Нет активного диалога, показываем главное меню
		msg := tgbotapi.NewMessage(message.Chat.ID, "Выберите действие:")
		msg.ReplyMarkup = b.getMainKeyboard()
		b.api.Send(msg)
		return nil
	}

	// Ожидаем сумму и название транзакции
	parts := strings.SplitN(message.Text, " ", 2)
	if len(parts) != 2 {
		b.sendErrorMessage(message.Chat.ID, "Неверный формат. Используйте: <сумма> <название>")
		return nil
	}

	amount, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || amount < 0 {
		b.sendErrorMessage(message.Chat.ID, "Неверная сумма. Используйте целое число, например: 50000")
		return nil
	}

	transaction := &model.Transaction{
		UserID:   userID(message.From.ID),
		Name:     parts[1],
		Type:     state.TransactionType,
		Amount:   amount,
		Category: state.CategoryKey,
	}
	if err := b.tracker.AddTransaction(context.Background(), transaction); err != nil {
		b.sendErrorMessage(message.Chat.ID, fmt.Sprintf("Ошибка при сохранении транзакции: %v", err))
		return nil
	}

	// Очищаем состояние после сохранения
	delete(b.states, message.From.ID)

	msg := tgbotapi.NewMessage(message.Chat.ID, "Транзакция сохранена! ✅")
	msg.ReplyMarkup = b.getMainKeyboard()
	b.api.Send(msg)
	return nil
}

func (b *Bot) handleChart(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "За какой период построить график?")
	msg.ReplyMarkup = b.getWindowKeyboard()
	b.api.Send(msg)
}

func (b *Bot) sendChart(chatID int64, tgUserID int64, window service.Window) {
	report, err := b.tracker.GetChartReport(context.Background(), userID(tgUserID), window, service.ViewCombined)
	if err != nil {
		b.sendErrorMessage(chatID, "Ошибка при построении графика")
		return
	}

	png, err := b.charts.GenerateSpendingChart(report)
	if err != nil {
		b.sendErrorMessage(chatID, "Ошибка при отрисовке графика")
		return
	}
	if png == nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "Пока нет транзакций для графика"))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: png})
	photo.Caption = fmt.Sprintf(
		"💰 Доходы: %d\n💸 Расходы: %d\n📊 Остаток: %d",
		report.Totals.Income, report.Totals.Expense, report.Totals.Net)
	b.api.Send(photo)
}

func (b *Bot) handleReport(message *tgbotapi.Message) {
	ctx := context.Background()
	uid := userID(message.From.ID)

	expenses, err := b.tracker.GetBreakdown(ctx, uid, model.TypeExpense, nil)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Ошибка при формировании отчета")
		return
	}
	income, err := b.tracker.GetBreakdown(ctx, uid, model.TypeIncome, nil)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Ошибка при формировании отчета")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Отчет по категориям\n\n💸 Расходы:\n")
	if len(expenses) == 0 {
		sb.WriteString("• пока пусто\n")
	}
	for _, s := range expenses {
		sb.WriteString(fmt.Sprintf("• %s: %d (%d%%)\n", s.Name, s.Amount, s.Percentage))
	}
	sb.WriteString("\n💰 Доходы:\n")
	if len(income) == 0 {
		sb.WriteString("• пока пусто\n")
	}
	for _, s := range income {
		sb.WriteString(fmt.Sprintf("• %s: %d (%d%%)\n", s.Name, s.Amount, s.Percentage))
	}

	b.api.Send(tgbotapi.NewMessage(message.Chat.ID, sb.String()))
}

func (b *Bot) handleBudget(message *tgbotapi.Message) {
	statuses, err := b.tracker.GetBudgetReport(context.Background(), userID(message.From.ID))
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Ошибка при формировании отчета по бюджетам")
		return
	}
	if len(statuses) == 0 {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID, "У вас пока нет бюджетов"))
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Бюджеты\n\n")
	for _, s := range statuses {
		marker := "✅"
		if s.RemainingBalance < 0 {
			marker = "⚠️"
		}
		sb.WriteString(fmt.Sprintf(
			"%s %s: израсходовано %.0f%%, остаток %d\n",
			marker, s.Budget.Name, s.UsagePercentage, s.RemainingBalance))
	}
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID, sb.String()))
}

func (b *Bot) handleWishlist(message *tgbotapi.Message) {
	statuses, err := b.tracker.GetWishlistReport(context.Background(), userID(message.From.ID))
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Ошибка при формировании отчета по целям")
		return
	}
	if len(statuses) == 0 {
		b.api.Send(tgbotapi.NewMessage(message.Chat.ID, "У вас пока нет целей накопления"))
		return
	}

	var sb strings.Builder
	sb.WriteString("🎯 Цели накопления\n\n")
	for _, s := range statuses {
		sb.WriteString(fmt.Sprintf("• %s: %d из %d", s.Wishlist.Name, s.Wishlist.Collected, s.Wishlist.Target))
		if !s.CanEstimate {
			// Взнос не задан, прогноз не определен
			sb.WriteString(" — оценка срока невозможна, задайте размер взноса\n")
			continue
		}
		p := s.Projection
		sb.WriteString(fmt.Sprintf(
			" (%d%%), осталось %d, финиш ~%s\n",
			p.ProgressPercentage, p.Remaining, formatDate(p.CompletionDate)))
	}
	b.api.Send(tgbotapi.NewMessage(message.Chat.ID, sb.String()))
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
