// Package domain contains core concepts of the anonymous chat system.
// This file defines the content descriptor relayed between paired participants.
// Content is opaque to the core: it is forwarded, never inspected.
package domain

import (
	"anon-chat/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ContentKind string

const (
	KindText    ContentKind = "text"
	KindSticker ContentKind = "sticker"
	KindPhoto   ContentKind = "photo"
	KindVideo   ContentKind = "video"
	KindAudio   ContentKind = "audio"
	KindVoice   ContentKind = "voice"
)

// Kinds lists every relayable kind.
var Kinds = []ContentKind{KindText, KindSticker, KindPhoto, KindVideo, KindAudio, KindVoice}

// Content is a tagged descriptor. Payload holds the text body for KindText
// and the platform file reference for every other kind.
type Content struct {
	Kind    ContentKind `validate:"required,oneof=text sticker photo video audio voice"`
	Payload string      `validate:"required"`
	Caption string      `validate:"max=1024"`
}

func Text(body string) Content {
	return Content{Kind: KindText, Payload: body}
}

func Media(kind ContentKind, fileID, caption string) Content {
	return Content{Kind: kind, Payload: fileID, Caption: caption}
}

// Validate checks the descriptor shape. Text carries no caption.
func (c Content) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidContent, err)
	}
	if c.Kind == KindText && c.Caption != "" {
		return fmt.Errorf("%w: text content cannot carry a caption", errors.ErrInvalidContent)
	}
	return nil
}
