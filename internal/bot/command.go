package bot

import "strings"

type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdHelp
	CmdStart
	CmdRegister
)

// Command is the closed set of inbound commands. Arg carries the raw date
// text for CmdRegister and is empty otherwise.
type Command struct {
	Kind CommandKind
	Arg  string
}

const HelpText = "/help — get some help\n/register DD.MM — your birthday"

// ParseCommand classifies a message text. botName разрешает форму
// /register@MyBot в групповых чатах; чужой адресат — не наша команда.
func ParseCommand(text, botName string) Command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{Kind: CmdUnknown}
	}
	name, arg := text, ""
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		name, arg = text[:i], strings.TrimSpace(text[i+1:])
	}
	if i := strings.IndexByte(name, '@'); i >= 0 {
		if botName != "" && !strings.EqualFold(name[i+1:], botName) {
			return Command{Kind: CmdUnknown}
		}
		name = name[:i]
	}
	switch strings.ToLower(name) {
	case "/help":
		return Command{Kind: CmdHelp}
	case "/start":
		return Command{Kind: CmdStart}
	case "/register":
		return Command{Kind: CmdRegister, Arg: arg}
	default:
		return Command{Kind: CmdUnknown}
	}
}
