package bot

import (
	"unicode/utf16"

	"github.com/go-telegram/bot/models"

	"linkcategorizer/internal/domain"
)

// linksFromMessage turns the url and text_link entities of a message (text
// and caption) into link records, in message order.
func linksFromMessage(msg *models.Message) []domain.Link {
	if msg == nil {
		return nil
	}
	links := linksFromEntities(msg.Text, msg.Entities)
	return append(links, linksFromEntities(msg.Caption, msg.CaptionEntities)...)
}

// Entity offsets and lengths are in UTF-16 code units.
func linksFromEntities(text string, entities []models.MessageEntity) []domain.Link {
	if len(entities) == 0 {
		return nil
	}
	units := utf16.Encode([]rune(text))

	var links []domain.Link
	for _, e := range entities {
		switch e.Type {
		case models.MessageEntityTypeURL:
			if u := entityText(units, e); u != "" {
				links = append(links, domain.Link{URL: u})
			}
		case models.MessageEntityTypeTextLink:
			if e.URL != "" {
				links = append(links, domain.Link{URL: e.URL, Text: entityText(units, e)})
			}
		case models.MessageEntityTypeEmail:
			if addr := entityText(units, e); addr != "" {
				links = append(links, domain.Link{URL: "mailto:" + addr, Text: addr})
			}
		case models.MessageEntityTypePhoneNumber:
			if number := entityText(units, e); number != "" {
				links = append(links, domain.Link{URL: "tel:" + number, Text: number})
			}
		}
	}
	return links
}

func entityText(units []uint16, e models.MessageEntity) string {
	end := e.Offset + e.Length
	if e.Offset < 0 || e.Length <= 0 || end > len(units) {
		return ""
	}
	return string(utf16.Decode(units[e.Offset:end]))
}
