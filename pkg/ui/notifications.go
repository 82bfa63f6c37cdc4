package ui

import (
	"fmt"
	"html"
	"os/exec"
	"runtime"
)

const appName = "autoscroll"

// NotificationSender delivers a desktop notification
type NotificationSender interface {
	Send(title, message string) error
}

// commandBuilder returns the program and arguments that raise a notification
type commandBuilder func(title, message string) (string, []string)

// commandSender shells out to the platform notification tool
type commandSender struct {
	build commandBuilder
}

func (c commandSender) Send(title, message string) error {
	name, args := c.build(title, message)
	return exec.Command(name, args...).Run()
}

func linuxCommand(title, message string) (string, []string) {
	return "notify-send", []string{"--app-name=" + appName, title, message}
}

func darwinCommand(title, message string) (string, []string) {
	return "osascript", []string{"-e", fmt.Sprintf("display notification %q with title %q", message, title)}
}

const toastScript = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
$doc = [Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime]::new()
$doc.LoadXml('<toast><visual><binding template="ToastText02"><text id="1">%s</text><text id="2">%s</text></binding></visual></toast>')
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s').Show([Windows.UI.Notifications.ToastNotification]::new($doc))`

func windowsCommand(title, message string) (string, []string) {
	// EscapeString also escapes single quotes, which delimit the PowerShell literal
	script := fmt.Sprintf(toastScript, html.EscapeString(title), html.EscapeString(message), appName)
	return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}
}

// platformSender picks the notification tool for goos, or nil when there is none
func platformSender(goos string) NotificationSender {
	builders := map[string]commandBuilder{
		"linux":   linuxCommand,
		"darwin":  darwinCommand,
		"windows": windowsCommand,
	}
	build, ok := builders[goos]
	if !ok {
		return nil
	}
	return commandSender{build: build}
}

// Notifier prints a message and mirrors it as a desktop notification
type Notifier struct {
	sender NotificationSender
}

// NewNotifier creates a Notifier for the running platform
func NewNotifier() *Notifier {
	return &Notifier{sender: platformSender(runtime.GOOS)}
}

// NewNotifierWithSender creates a Notifier around an explicit sender
func NewNotifierWithSender(sender NotificationSender) *Notifier {
	return &Notifier{sender: sender}
}

// SendNotification prints to the console and sends a desktop notification
func (n *Notifier) SendNotification(title, message string) {
	emit(false, "\n%s: %s\n", Cyan(title), Yellow(message))
	n.deliver(title, message)
}

// SendError prints even in quiet mode
func (n *Notifier) SendError(title, message string) {
	emit(true, "\n%s: %s\n", Red(title), Red(message))
	n.deliver(title, message)
}

// NotifyUpdate announces that version latest can replace current
func (n *Notifier) NotifyUpdate(current, latest string) {
	n.SendNotification(appName+" update available",
		fmt.Sprintf("Version %s is available (you have %s)", latest, current))
}

// deliver is best effort; a missing notify-send must not fail a command
func (n *Notifier) deliver(title, message string) {
	if n.sender == nil {
		return
	}
	_ = n.sender.Send(title, message)
}
