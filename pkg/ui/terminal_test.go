package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetQuietMode(false)
		SetNoColor(false)
	})
	return &buf
}

func TestQuietModeKeepsErrors(t *testing.T) {
	buf := captureOutput(t)
	SetNoColor(true)
	SetQuietMode(true)

	PrintSuccess("done")
	PrintInfo("Document", "main.go")
	PrintError("Failed to load configuration", "bad yaml")

	assert.Equal(t, "Failed to load configuration: bad yaml\n", buf.String())
}

func TestNoColorStripsEscapes(t *testing.T) {
	buf := captureOutput(t)
	SetNoColor(true)

	PrintWarning("heads up")
	assert.Equal(t, "heads up\n", buf.String())

	SetNoColor(false)
	assert.Equal(t, "\033[32mok\033[0m", Green("ok"))
}

type recordingSender struct {
	titles   []string
	messages []string
	err      error
}

func (r *recordingSender) Send(title, message string) error {
	r.titles = append(r.titles, title)
	r.messages = append(r.messages, message)
	return r.err
}

func TestNotifyUpdate(t *testing.T) {
	buf := captureOutput(t)
	SetNoColor(true)
	sender := &recordingSender{err: errors.New("no notification daemon")}

	NewNotifierWithSender(sender).NotifyUpdate("v1.0.0", "v1.2.0")

	assert.Equal(t, []string{"autoscroll update available"}, sender.titles)
	assert.Equal(t, []string{"Version v1.2.0 is available (you have v1.0.0)"}, sender.messages)
	assert.Contains(t, buf.String(), "Version v1.2.0 is available")
}

func TestPlatformCommands(t *testing.T) {
	name, args := linuxCommand("Title", "Body")
	assert.Equal(t, "notify-send", name)
	assert.Equal(t, []string{"--app-name=autoscroll", "Title", "Body"}, args)

	name, args = darwinCommand(`say "hi"`, "Body")
	assert.Equal(t, "osascript", name)
	assert.Equal(t, `display notification "Body" with title "say \"hi\""`, args[1])

	name, args = windowsCommand("it's <new>", "Body")
	assert.Equal(t, "powershell", name)
	script := args[len(args)-1]
	assert.Contains(t, script, "it&#39;s &lt;new&gt;")
	assert.Contains(t, script, "CreateToastNotifier('autoscroll')")

	assert.Nil(t, platformSender("plan9"))
	assert.NotNil(t, platformSender("linux"))
}
