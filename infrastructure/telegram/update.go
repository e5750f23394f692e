// Package telegram adapts the Bot API to the chat core: it decodes webhook
// updates into inbound calls and renders outbound actions as API requests.
package telegram

import (
	"anon-chat/domain"

	"github.com/samber/lo"
)

type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

type User struct {
	ID       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
	Username string `json:"username,omitempty"`
}

type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
}

type File struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
}

type PhotoSize struct {
	File
	Width    int `json:"width"`
	Height   int `json:"height"`
	FileSize int `json:"file_size,omitempty"`
}

type Message struct {
	MessageID int64       `json:"message_id"`
	From      *User       `json:"from,omitempty"`
	Chat      Chat        `json:"chat"`
	Text      string      `json:"text,omitempty"`
	Caption   string      `json:"caption,omitempty"`
	Sticker   *File       `json:"sticker,omitempty"`
	Photo     []PhotoSize `json:"photo,omitempty"`
	Video     *File       `json:"video,omitempty"`
	Audio     *File       `json:"audio,omitempty"`
	Voice     *File       `json:"voice,omitempty"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// Content turns a message into a relayable descriptor.
// It reports false for anything the bot does not relay.
func (m *Message) Content() (domain.Content, bool) {
	switch {
	case m.Sticker != nil:
		return domain.Media(domain.KindSticker, m.Sticker.FileID, ""), true
	case len(m.Photo) > 0:
		return domain.Media(domain.KindPhoto, largest(m.Photo).FileID, m.Caption), true
	case m.Video != nil:
		return domain.Media(domain.KindVideo, m.Video.FileID, m.Caption), true
	case m.Audio != nil:
		return domain.Media(domain.KindAudio, m.Audio.FileID, m.Caption), true
	case m.Voice != nil:
		return domain.Media(domain.KindVoice, m.Voice.FileID, m.Caption), true
	case m.Text != "":
		return domain.Text(m.Text), true
	default:
		return domain.Content{}, false
	}
}

func largest(sizes []PhotoSize) PhotoSize {
	return lo.MaxBy(sizes, func(a, b PhotoSize) bool {
		return a.Width*a.Height > b.Width*b.Height
	})
}
