// Package autostart registers the daemon to run at login.
package autostart

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"text/template"
)

const (
	appName = "inputhook"
	agentID = "dev.inputhook.agent"
)

// Entry is the login item for a daemon command line.
type Entry struct {
	ExecutablePath string
	Args           []string
}

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{xml .ExecutablePath}}</string>
{{- range .Args}}
        <string>{{xml .}}</string>
{{- end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name={{.Name}}
Comment=Global keyboard and mouse capture daemon
Exec={{exec .ExecutablePath .Args}}
Terminal=false
X-GNOME-Autostart-enabled=true
`

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"xml":  xmlEscape,
	"exec": desktopExec,
}).Parse(`{{define "plist"}}` + macLaunchAgentPlist + `{{end}}{{define "desktop"}}` + xdgDesktopEntry + `{{end}}`))

// Enable registers the running executable, started with args, as a login item
func Enable(args ...string) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	return enable(Entry{ExecutablePath: execPath, Args: args})
}

// Disable removes the login item. Removing a missing item is not an error.
func Disable() error {
	return disable()
}

// IsEnabled checks if a login item is registered
func IsEnabled() bool {
	return isEnabled()
}

func render(name string, e Entry) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Entry
		Label string
		Name  string
	}{e, agentID, appName}
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func xmlEscape(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// desktopExec quotes a command line for the Exec key of a desktop entry.
func desktopExec(path string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{path}, args...) {
		if a != "" && !strings.ContainsAny(a, " \t\n\"'\\><~|&;$*?#()`%") {
			parts = append(parts, a)
			continue
		}
		var b strings.Builder
		b.WriteByte('"')
		for _, r := range a {
			switch r {
			case '"', '`', '$', '\\':
				b.WriteByte('\\')
			case '%':
				b.WriteByte('%')
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}
