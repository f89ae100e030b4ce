package messages

import (
	"fmt"
	"github.com/microcosm-cc/bluemonday"
	"github.com/themeparkify/bot-telegram/model"
	"strings"
	"unicode/utf8"
)

const fmtLenMaxTitle = 128
const fmtLenMaxBody = 512
const fmtLenMaxField = 256
const fmtLenMaxMsg = 4096

const urlMapsBase = "https://www.google.com/maps/place/"
const labelMapsDefault = "Google Maps"

type Format struct {
	HtmlPolicy *bluemonday.Policy
}

// NewHtmlPolicy allows only the markup Telegram accepts, see https://core.telegram.org/bots/api#html-style
func NewHtmlPolicy() (p *bluemonday.Policy) {
	p = bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.
		AllowAttrs("href").
		OnElements("a")
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre")
	return
}

func (f Format) CardHtml(c model.Card) (txt string) {
	if c.Title != "" {
		txt += fmt.Sprintf("<b>%s</b>\n", truncateStringUtf8(f.HtmlPolicy.Sanitize(c.Title), fmtLenMaxTitle))
	}
	if c.Body != "" {
		txt += fmt.Sprintf("\n%s\n", truncateStringUtf8(f.HtmlPolicy.Sanitize(c.Body), fmtLenMaxBody))
	}
	if c.Address != nil {
		txt += f.AddressHtml(*c.Address) + "\n"
	}
	if len(c.Fields) > 0 {
		txt += "\n"
	}
	for _, fld := range c.Fields {
		txt += fmt.Sprintf(
			"<b>%s</b>: %s\n",
			f.HtmlPolicy.Sanitize(fld.Name),
			truncateStringUtf8(f.HtmlPolicy.Sanitize(fld.Value), fmtLenMaxField),
		)
	}
	return truncateStringUtf8(txt, fmtLenMaxMsg)
}

func (f Format) CardPlain(c model.Card) (txt string) {
	if c.Title != "" {
		txt += fmt.Sprintf("%s\n", truncateStringUtf8(c.Title, fmtLenMaxTitle))
	}
	if c.Body != "" {
		txt += fmt.Sprintf("\n%s\n", truncateStringUtf8(c.Body, fmtLenMaxBody))
	}
	if c.Address != nil {
		txt += AddressPlain(*c.Address) + "\n"
	}
	if len(c.Fields) > 0 {
		txt += "\n"
	}
	for _, fld := range c.Fields {
		txt += fmt.Sprintf("%s: %s\n", fld.Name, truncateStringUtf8(fld.Value, fmtLenMaxField))
	}
	return truncateStringUtf8(txt, fmtLenMaxMsg)
}

func (f Format) AddressHtml(a model.Address) string {
	return fmt.Sprintf("<a href=\"%s\">%s</a>", MapsUrl(a), f.HtmlPolicy.Sanitize(place(a)))
}

func AddressPlain(a model.Address) string {
	return fmt.Sprintf("%s: %s", place(a), MapsUrl(a))
}

func MapsUrl(a model.Address) string {
	return fmt.Sprintf("%s%g,%g", urlMapsBase, a.Latitude, a.Longitude)
}

func place(a model.Address) (p string) {
	switch {
	case a.Park != "" && a.Destination != "":
		p = a.Park + " - " + a.Destination
	case a.Park != "":
		p = a.Park
	case a.Destination != "":
		p = a.Destination
	default:
		p = labelMapsDefault
	}
	return
}

// ListHtml renders the title followed by the entries, one paragraph each.
func (f Format) ListHtml(title string, entries []model.Entry) (txt string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b>\n", f.HtmlPolicy.Sanitize(title)))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("\n<b>%s</b>\n", truncateStringUtf8(f.HtmlPolicy.Sanitize(e.Name), fmtLenMaxTitle)))
		if e.Detail != "" {
			sb.WriteString(f.HtmlPolicy.Sanitize(e.Detail) + "\n")
		}
		if e.Address != nil {
			sb.WriteString(f.AddressHtml(*e.Address) + "\n")
		}
	}
	return truncateStringUtf8(sb.String(), fmtLenMaxMsg)
}

func truncateStringUtf8(s string, lenMax int) string {
	if len(s) <= lenMax {
		return s
	}
	// Ensure we don't split a UTF-8 character in the middle.
	for i := lenMax - 3; i > 0; i-- {
		if utf8.RuneStart(s[i]) {
			return s[:i] + "..."
		}
	}
	return ""
}
