package model

// Category описывает элемент фиксированного справочника категорий.
// Один и тот же справочник использует и агрегация, и клиенты,
// которым нужны имена и иконки.
type Category struct {
	Key  string          `json:"key"`
	Name string          `json:"name"`
	Icon string          `json:"icon"`
	Type TransactionType `json:"type"`
}

var expenseCategories = []Category{
	{Key: "grocery", Name: "Grocery", Icon: "/selection/grocery.svg", Type: TypeExpense},
	{Key: "food", Name: "Food", Icon: "/selection/food.svg", Type: TypeExpense},
	{Key: "transport", Name: "Transport", Icon: "/selection/transport.svg", Type: TypeExpense},
	{Key: "clothing", Name: "Clothing", Icon: "/selection/clothing.svg", Type: TypeExpense},
	{Key: "entertainment", Name: "Entertainment", Icon: "/selection/ticket.svg", Type: TypeExpense},
	{Key: "gifts", Name: "Gifts", Icon: "/selection/gift.svg", Type: TypeExpense},
	{Key: "communication", Name: "Communication", Icon: "/selection/comunicate.svg", Type: TypeExpense},
	{Key: "tax", Name: "Tax", Icon: "/selection/tax.svg", Type: TypeExpense},
	{Key: "housing", Name: "Housing", Icon: "/selection/house.svg", Type: TypeExpense},
	{Key: "beauty", Name: "Beauty", Icon: "/selection/beauty.svg", Type: TypeExpense},
	{Key: "medical", Name: "Medical", Icon: "/selection/medical.svg", Type: TypeExpense},
	{Key: "social", Name: "Social", Icon: "/selection/social.svg", Type: TypeExpense},
}

var incomeCategories = []Category{
	{Key: "salary", Name: "Salary", Icon: "/selection/salary.svg", Type: TypeIncome},
	{Key: "invest", Name: "Invest", Icon: "/selection/invest.svg", Type: TypeIncome},
	{Key: "business", Name: "Business", Icon: "/selection/business.svg", Type: TypeIncome},
	{Key: "bonus", Name: "Bonus", Icon: "/selection/bonus.svg", Type: TypeIncome},
	{Key: "gift", Name: "Gift", Icon: "/selection/gift.svg", Type: TypeIncome},
	{Key: "other", Name: "Other", Icon: "/selection/other.svg", Type: TypeIncome},
}

// Неизвестные и пустые категории попадают в корзину "Other"
var fallbackCategory = map[TransactionType]Category{
	TypeExpense: {Key: "other", Name: "Other", Icon: "/selection/other.svg", Type: TypeExpense},
	TypeIncome:  {Key: "other", Name: "Other", Icon: "/selection/other.svg", Type: TypeIncome},
}

// Categories возвращает справочник категорий для заданного типа транзакции
func Categories(t TransactionType) []Category {
	if t == TypeIncome {
		return incomeCategories
	}
	return expenseCategories
}

// LookupCategory находит категорию по ключу. Если ключ не известен,
// возвращается категория по умолчанию для данного типа.
func LookupCategory(key string, t TransactionType) Category {
	for _, c := range Categories(t) {
		if c.Key == key {
			return c
		}
	}
	return fallbackCategory[t]
}
