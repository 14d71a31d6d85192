package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akazantsev/kopilka/internal/model"
)

func (b *Bot) getMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/add"),
			tgbotapi.NewKeyboardButton("/chart"),
			tgbotapi.NewKeyboardButton("/report"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/budget"),
			tgbotapi.NewKeyboardButton("/wishlist"),
		),
	)
}

func (b *Bot) getTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Доход", "add_income"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Расход", "add_expense"),
		),
	)
}

// getCategoriesKeyboard строит клавиатуру по фиксированному справочнику
// категорий, по две кнопки в ряд
func (b *Bot) getCategoriesKeyboard(t model.TransactionType) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, category := range model.Categories(t) {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			category.Name,
			"cat_"+string(t)+"_"+category.Key,
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getWindowKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("7 дней", "chart_7"),
			tgbotapi.NewInlineKeyboardButtonData("30 дней", "chart_30"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("3 месяца", "chart_90"),
			tgbotapi.NewInlineKeyboardButtonData("Все время", "chart_0"),
		),
	)
}
