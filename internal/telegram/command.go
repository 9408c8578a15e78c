package telegram

import (
	"strconv"
	"strings"
)

// Command is a parsed inbound bot command.
type Command struct {
	Name  string // "search", "more", "status", "pause", "resume", "help"
	Count int    // for "more"
}

const (
	defaultMoreCount = 10
	maxMoreCount     = 25
)

// ParseCommand maps message text onto one of the supported commands.
// "/more 15" carries a count, clamped to 1..25; bad counts fall back to the
// default rather than erroring at the chat surface.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(strings.ToLower(text))
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}

	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], "/")
	// strip bot-mention suffix: /search@jobscout_bot
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}

	switch name {
	case "search":
		return Command{Name: "search"}, true
	case "more":
		c := Command{Name: "more", Count: defaultMoreCount}
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				if n < 1 {
					n = 1
				}
				if n > maxMoreCount {
					n = maxMoreCount
				}
				c.Count = n
			}
		}
		return c, true
	case "status":
		return Command{Name: "status"}, true
	case "stop", "pause":
		return Command{Name: "pause"}, true
	case "resume", "start_alerts":
		return Command{Name: "resume"}, true
	case "start", "help":
		return Command{Name: "help"}, true
	default:
		return Command{}, false
	}
}
