package shells

import (
	"github.com/alessio/shellescape"
	"github.com/google/shlex"
)

func Quote(arg string) string {
	return shellescape.Quote(arg)
}

func Join(cmdAndArgs []string) string {
	return shellescape.QuoteCommand(cmdAndArgs)
}

// Split parses a command line the way a POSIX shell would, without
// expansions. Used for the post-install hook commands stored in settings.
func Split(cmd string) ([]string, error) {
	return shlex.Split(cmd)
}
