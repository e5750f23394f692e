package telegram

import (
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
	"fmt"
)

// Request is one Bot API call.
type Request struct {
	Method string
	Params map[string]any
}

// Renderer turns the actions addressed to one participant into API calls.
// Reply keyboard changes ride on the preceding message when they can, since
// Telegram only updates a keyboard together with a message.
type Renderer struct {
	links Links
}

func NewRenderer(links Links) Renderer {
	return Renderer{links: links}
}

func (r Renderer) Render(to domain.ParticipantID, actions []event.Action) ([]Request, error) {
	var out []Request
	for _, a := range actions {
		switch act := a.(type) {
		case event.Notify:
			params := map[string]any{"chat_id": to, "text": Text(act.Template, act.Handles)}
			if withMenu[act.Template] {
				params["reply_markup"] = InlineMenu(r.links)
			}
			out = append(out, Request{Method: "sendMessage", Params: params})
		case event.OfferResponseControls:
			out = attachMarkup(out, to, ResponseKeyboard(act.Choices))
		case event.ClearResponseControls:
			out = attachMarkup(out, to, ReplyKeyboardRemove{RemoveKeyboard: true})
		case event.DeliverContent:
			req, err := contentRequest(to, act.Content)
			if err != nil {
				return nil, err
			}
			out = append(out, req)
		default:
			return nil, fmt.Errorf("unsupported action %T", a)
		}
	}
	return out, nil
}

func attachMarkup(out []Request, to domain.ParticipantID, markup any) []Request {
	if n := len(out); n > 0 && out[n-1].Method == "sendMessage" {
		if _, taken := out[n-1].Params["reply_markup"]; !taken {
			out[n-1].Params["reply_markup"] = markup
			return out
		}
	}
	return append(out, Request{Method: "sendMessage", Params: map[string]any{
		"chat_id":      to,
		"text":         controlsHint,
		"reply_markup": markup,
	}})
}

func contentRequest(to domain.ParticipantID, c domain.Content) (Request, error) {
	var method, field string
	switch c.Kind {
	case domain.KindText:
		return Request{Method: "sendMessage", Params: map[string]any{"chat_id": to, "text": c.Payload}}, nil
	case domain.KindSticker:
		method, field = "sendSticker", "sticker"
	case domain.KindPhoto:
		method, field = "sendPhoto", "photo"
	case domain.KindVideo:
		method, field = "sendVideo", "video"
	case domain.KindAudio:
		method, field = "sendAudio", "audio"
	case domain.KindVoice:
		method, field = "sendVoice", "voice"
	default:
		return Request{}, fmt.Errorf("%w: kind %q", errors.ErrInvalidContent, c.Kind)
	}
	params := map[string]any{"chat_id": to, field: c.Payload}
	if c.Caption != "" {
		params["caption"] = c.Caption
	}
	return Request{Method: method, Params: params}, nil
}
