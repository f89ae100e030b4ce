package service

import (
	"fmt"
	"gopkg.in/telebot.v3"
	"strings"
)

const CmdStart = "/start"
const CmdHelp = "/help"
const CmdDestAdd = "/dest_add"
const CmdDestRemove = "/dest_remove"
const CmdDestClear = "/dest_clear"
const CmdDests = "/dests"
const CmdRide = "/ride"
const CmdTrack = "/track"
const CmdUntrack = "/untrack"
const CmdTracks = "/tracks"
const CmdTracksClear = "/tracks_clear"

const UsageDestAdd = CmdDestAdd + " <destination name>"
const UsageDestRemove = CmdDestRemove + " <destination name>"
const UsageRide = CmdRide + " <attraction>[ | park[ | destination]]"
const UsageTrack = CmdTrack + " <minutes> <attraction>[ | park[ | destination]]"
const UsageUntrack = CmdUntrack + " <attraction>[ | park[ | destination]]"

const LabelTracks = "Tracked attractions"
const LabelDests = "Destinations"

const msgHelp = `Get notified when the wait time of a theme park attraction drops to your threshold.

1. Add the destinations you visit: %s
2. Look up a ride: %s
3. Track it: %s
   e.g. /track 30 space mountain | magic kingdom
4. Stop tracking: %s

Other commands: %s, %s, %s, %s`

// Commands is the menu registered with the bot.
var Commands = []telebot.Command{
	command(CmdDestAdd, "add a destination to search in"),
	command(CmdDestRemove, "remove a destination"),
	command(CmdDests, "list your destinations"),
	command(CmdDestClear, "remove all destinations"),
	command(CmdRide, "show the wait time and the status of an attraction"),
	command(CmdTrack, "notify when the wait time reaches the threshold"),
	command(CmdUntrack, "stop tracking an attraction"),
	command(CmdTracks, "list your tracked attractions"),
	command(CmdTracksClear, "stop tracking all attractions"),
	command(CmdHelp, "how to use"),
}

func command(cmd, desc string) telebot.Command {
	return telebot.Command{
		Text:        strings.TrimPrefix(cmd, "/"),
		Description: desc,
	}
}

var btnTracks = telebot.Btn{
	Text: LabelTracks,
}

var btnDests = telebot.Btn{
	Text: LabelDests,
}

func MakeReplyKeyboard() (kbd *telebot.ReplyMarkup) {
	kbd = &telebot.ReplyMarkup{
		ResizeKeyboard: true,
	}
	kbd.Reply(
		kbd.Row(btnTracks, btnDests),
	)
	return
}

func HelpText() string {
	return fmt.Sprintf(msgHelp, UsageDestAdd, UsageRide, UsageTrack, UsageUntrack, CmdDests, CmdTracks, CmdDestClear, CmdTracksClear)
}

func StartHandlerFunc(kbd *telebot.ReplyMarkup) telebot.HandlerFunc {
	return func(tgCtx telebot.Context) (err error) {
		chat := tgCtx.Chat()
		switch chat.Type {
		case telebot.ChatPrivate:
			err = tgCtx.Send(HelpText(), kbd)
		default:
			err = fmt.Errorf("%w: %s", ErrChatType, chat.Type)
		}
		return
	}
}
