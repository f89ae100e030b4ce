package messages

import (
	"github.com/stretchr/testify/assert"
	"github.com/themeparkify/bot-telegram/model"
	"strings"
	"testing"
)

func TestFormat_CardHtml(t *testing.T) {
	fmtMsg := Format{
		HtmlPolicy: NewHtmlPolicy(),
	}
	cases := map[string]struct {
		in  model.Card
		out string
	}{
		"reached": {
			in: model.Card{
				Title: "Reached threshold!",
				Body:  "Space Mountain has reached your threshold.",
				Address: &model.Address{
					Park:        "Magic Kingdom Park",
					Destination: "Walt Disney World Resort",
					Latitude:    28.4177,
					Longitude:   -81.5812,
				},
				Fields: []model.Field{
					{
						Name:  "Threshold",
						Value: "30 minutes",
					},
					{
						Name:  "Wait time",
						Value: "20 minutes",
					},
				},
			},
			out: `<b>Reached threshold!</b>

Space Mountain has reached your threshold.
<a href="https://www.google.com/maps/place/28.4177,-81.5812">Magic Kingdom Park - Walt Disney World Resort</a>

<b>Threshold</b>: 30 minutes
<b>Wait time</b>: 20 minutes
`,
		},
		"title only": {
			in: model.Card{
				Title: "Space Mountain is closed.",
			},
			out: "<b>Space Mountain is closed.</b>\n",
		},
		"markup is sanitized": {
			in: model.Card{
				Title: "<script>alert(1)</script>Ride",
				Body:  `<i>fast</i> ride<img src="a.png"/>`,
			},
			out: "<b>Ride</b>\n\n<i>fast</i> ride\n",
		},
		"no location names": {
			in: model.Card{
				Address: &model.Address{
					Latitude:  1.5,
					Longitude: 2,
				},
			},
			out: "<a href=\"https://www.google.com/maps/place/1.5,2\">Google Maps</a>\n",
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, c.out, fmtMsg.CardHtml(c.in))
		})
	}
}

func TestFormat_CardPlain(t *testing.T) {
	fmtMsg := Format{
		HtmlPolicy: NewHtmlPolicy(),
	}
	txt := fmtMsg.CardPlain(model.Card{
		Title: "Above threshold",
		Body:  "Space Mountain is over your threshold.",
		Address: &model.Address{
			Park:      "Disneyland Park",
			Latitude:  33.8121,
			Longitude: -117.919,
		},
		Fields: []model.Field{
			{
				Name:  "Wait time",
				Value: "45 minutes",
			},
		},
	})
	assert.Equal(t, `Above threshold

Space Mountain is over your threshold.
Disneyland Park: https://www.google.com/maps/place/33.8121,-117.919

Wait time: 45 minutes
`, txt)
}

func TestFormat_ListHtml(t *testing.T) {
	fmtMsg := Format{
		HtmlPolicy: NewHtmlPolicy(),
	}
	txt := fmtMsg.ListHtml("Tracked attractions", []model.Entry{
		{
			Name:   "Space Mountain",
			Detail: "Threshold: 30 minutes",
			Address: &model.Address{
				Park:        "Disneyland Park",
				Destination: "Disneyland Resort",
				Latitude:    33.8121,
				Longitude:   -117.919,
			},
		},
		{
			Name: "Incredicoaster",
		},
	})
	assert.Equal(t, `<b>Tracked attractions</b>

<b>Space Mountain</b>
Threshold: 30 minutes
<a href="https://www.google.com/maps/place/33.8121,-117.919">Disneyland Park - Disneyland Resort</a>

<b>Incredicoaster</b>
`, txt)
}

func TestTruncateStringUtf8(t *testing.T) {
	cases := map[string]struct {
		in     string
		lenMax int
		out    string
	}{
		"short": {
			in:     "abc",
			lenMax: 10,
			out:    "abc",
		},
		"ascii": {
			in:     "abcdefghij",
			lenMax: 8,
			out:    "abcde...",
		},
		"multibyte": {
			in:     strings.Repeat("é", 5),
			lenMax: 8,
			out:    "éé...",
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, c.out, truncateStringUtf8(c.in, c.lenMax))
		})
	}
}
