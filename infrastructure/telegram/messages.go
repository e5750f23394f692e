package telegram

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"fmt"
	"strings"
)

// NewChatCallback is the callback data of the inline "new chat" button.
const NewChatCallback = "NewChat"

var texts = map[event.Template]string{
	event.Welcome:            "👋 Salom! Anonim chat botiga xush kelibsiz.\nTugmalardan foydalaning.",
	event.Searching:          "⚠️ Hozircha boshqa foydalanuvchilar mavjud emas.\n⏳ Suhbatdosh topilishi bilan sizga xabar beramiz.",
	event.StillSearching:     "⏳ Siz allaqachon navbatdasiz. Suhbatdosh qidirilmoqda...",
	event.Connected:          "✅ Siz suhbatdoshga ulandingiz! Like yoki Dislike tugmalarini bosing.",
	event.AlreadyPaired:      "⚠️ Siz allaqachon suhbatdasiz. Yakunlash uchun /stop buyrugʻini yuboring.",
	event.LikeRecorded:       "👍 Tanlovingiz qabul qilindi. Suhbatdoshingiz javobi kutilmoqda.",
	event.Declined:           "👎 Siz suhbatni rad etdiz.",
	event.PartnerDeclined:    "👎 Sizning suhbatdoshingiz sizni rad etdi.",
	event.Goodbye:            "👋 Suhbat yakunlandi.",
	event.PartnerLeft:        "👋 Suhbatdoshingiz suhbatni yakunladi.",
	event.WaitExpired:        "⌛ Suhbatdosh topilmadi, qidiruv toʻxtatildi. Qaytadan urinib koʻring.",
	event.MissingIdentity:    "❌ Iltimos, Telegram usernameingizni qoʻying.",
	event.NoConversation:     "⚠️ Suhbat topilmadi.",
	event.NotInConversation:  "⚠️ Siz hozircha suhbatda emassiz.",
	event.PartnerUnreachable: "⚠️ Suhbatdoshingizga xabar yetkazib boʻlmadi.",
}

// controlsHint is sent when reply buttons cannot ride on a previous message.
const controlsHint = "⬇️"

// withMenu lists the templates shown together with the inline menu.
var withMenu = map[event.Template]bool{
	event.Welcome:           true,
	event.NotInConversation: true,
	event.WaitExpired:       true,
}

// Text renders a template. Handles are only used by MutualMatch.
func Text(t event.Template, handles []string) string {
	if t == event.MutualMatch {
		mentions := make([]string, 0, len(handles))
		for _, h := range handles {
			mentions = append(mentions, "@"+h)
		}
		return fmt.Sprintf("💖 Siz bir-biringizni yoqtirdingiz!\n%s", strings.Join(mentions, " 🤝 "))
	}
	if text, ok := texts[t]; ok {
		return text
	}
	return string(t)
}

// Links are the optional owner, group and channel usernames of the inline menu.
type Links struct {
	Owner   string
	Group   string
	Channel string
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type KeyboardButton struct {
	Text string `json:"text"`
}

type ReplyKeyboardMarkup struct {
	Keyboard        [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard"`
	OneTimeKeyboard bool               `json:"one_time_keyboard"`
}

type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

// InlineMenu is the "new chat" button plus one row of configured links.
func InlineMenu(links Links) InlineKeyboardMarkup {
	menu := InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "💬 Yangi suhbat", CallbackData: NewChatCallback}},
	}}
	var row []InlineKeyboardButton
	for _, l := range []struct{ label, name string }{
		{"🔵 Admin", links.Owner},
		{"👥 Guruh", links.Group},
		{"📣 Kanal", links.Channel},
	} {
		if l.name != "" {
			row = append(row, InlineKeyboardButton{Text: l.label, URL: "https://t.me/" + strings.TrimPrefix(l.name, "@")})
		}
	}
	if len(row) > 0 {
		menu.InlineKeyboard = append(menu.InlineKeyboard, row)
	}
	return menu
}

// ResponseKeyboard shows one reply button per choice on a single row.
func ResponseKeyboard(choices []domain.Choice) ReplyKeyboardMarkup {
	row := make([]KeyboardButton, 0, len(choices))
	for _, c := range choices {
		switch c {
		case domain.Like:
			row = append(row, KeyboardButton{Text: domain.LikePhrase})
		case domain.Dislike:
			row = append(row, KeyboardButton{Text: domain.DislikePhrase})
		}
	}
	return ReplyKeyboardMarkup{Keyboard: [][]KeyboardButton{row}, ResizeKeyboard: true}
}
