package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/harrisonrobin/morningtasks/pkg/util"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	faint  = color.New(color.Faint)
)

// minutes formats a minute count the same way meeting lengths are written.
func minutes(m int) string {
	if m == 0 {
		return "-"
	}
	return util.FormatMinutes(int64(m))
}

// newProgressBar reports on stderr so stdout stays clean for piping.
func newProgressBar(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func printPath(w io.Writer, label, path string) {
	fmt.Fprintf(w, "%s %s\n", green.Sprint(label), path)
}

// openBrowser hands url to the desktop's default handler.
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
