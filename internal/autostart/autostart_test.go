package autostart

import (
	"strings"
	"testing"
)

func TestRenderLaunchAgent(t *testing.T) {
	data, err := render("plist", Entry{
		ExecutablePath: "/Applications/Input Hook/inputhook",
		Args:           []string{"-config", "/tmp/a&b.json"},
	})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	s := string(data)
	for _, want := range []string{
		"<string>dev.inputhook.agent</string>",
		"<string>/Applications/Input Hook/inputhook</string>",
		"<string>-config</string>",
		"<string>/tmp/a&amp;b.json</string>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in plist:\n%s", want, s)
		}
	}
}

func TestRenderDesktopEntry(t *testing.T) {
	data, err := render("desktop", Entry{ExecutablePath: "/usr/bin/inputhook", Args: []string{"-log-level", "debug"}})
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if !strings.Contains(string(data), "\nExec=/usr/bin/inputhook -log-level debug\n") {
		t.Errorf("unexpected desktop entry:\n%s", data)
	}
}

func TestDesktopExecQuoting(t *testing.T) {
	cases := []struct {
		path string
		args []string
		want string
	}{
		{"/usr/bin/inputhook", nil, "/usr/bin/inputhook"},
		{"/opt/Input Hook/inputhook", nil, `"/opt/Input Hook/inputhook"`},
		{"/usr/bin/inputhook", []string{"-config", `/home/u/$cfg "x".json`}, `/usr/bin/inputhook -config "/home/u/\$cfg \"x\".json"`},
		{"/usr/bin/inputhook", []string{"100%"}, `/usr/bin/inputhook "100%%"`},
		{"/usr/bin/inputhook", []string{""}, `/usr/bin/inputhook ""`},
	}
	for _, c := range cases {
		if got := desktopExec(c.path, c.args); got != c.want {
			t.Errorf("desktopExec(%q, %q) = %s, want %s", c.path, c.args, got, c.want)
		}
	}
}
