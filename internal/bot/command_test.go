package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want Command
	}{
		{"/help", Command{Kind: CmdHelp}},
		{"/start", Command{Kind: CmdStart}},
		{"/register 15.03", Command{Kind: CmdRegister, Arg: "15.03"}},
		{"/register", Command{Kind: CmdRegister}},
		{"/register@greeter_bot 15.03", Command{Kind: CmdRegister, Arg: "15.03"}},
		{"/register@other_bot 15.03", Command{Kind: CmdUnknown}},
		{"/REGISTER 15.03", Command{Kind: CmdRegister, Arg: "15.03"}},
		{"  /help  ", Command{Kind: CmdHelp}},
		{"hello", Command{Kind: CmdUnknown}},
		{"", Command{Kind: CmdUnknown}},
		{"/unknown", Command{Kind: CmdUnknown}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseCommand(tc.text, "greeter_bot"), "text %q", tc.text)
	}
}
