package main

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// CursorSampler reports the current pointer position in screen coordinates.
type CursorSampler interface {
	Position() (x, y int, err error)
	Close() error
}

// x11Cursor queries the pointer over a persistent X connection.
type x11Cursor struct {
	conn *xgb.Conn
	root xproto.Window
}

func newX11Cursor() (CursorSampler, string, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, "", fmt.Errorf("connecting to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, "", fmt.Errorf("no default X screen")
	}

	return &x11Cursor{conn: conn, root: screen.Root}, "X11", nil
}

func (c *x11Cursor) Position() (int, int, error) {
	reply, err := xproto.QueryPointer(c.conn, c.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("querying pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (c *x11Cursor) Close() error {
	c.conn.Close()
	return nil
}

// xdotoolCursor shells out to xdotool for each sample.
type xdotoolCursor struct{}

func newXdotoolCursor() (CursorSampler, string, error) {
	if !hasExecutable("xdotool") {
		return nil, "", fmt.Errorf("xdotool not found")
	}
	return xdotoolCursor{}, "xdotool", nil
}

func (xdotoolCursor) Position() (int, int, error) {
	out, err := exec.Command("xdotool", "getmouselocation").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("running xdotool: %w", err)
	}
	return parseMouseLocation(string(out))
}

func (xdotoolCursor) Close() error { return nil }

// NewCursorSampler tries X11 → xdotool and returns the first that works.
func NewCursorSampler() (CursorSampler, string, error) {
	c, method, err := newX11Cursor()
	if err == nil {
		return c, method, nil
	}

	c, method, err = newXdotoolCursor()
	if err == nil {
		return c, method, nil
	}

	return nil, "", fmt.Errorf("no pointer query backend available")
}

// parseMouseLocation parses xdotool getmouselocation output, e.g.
// "x:512 y:384 screen:0 window:123456".
func parseMouseLocation(s string) (int, int, error) {
	x, y := 0, 0
	haveX, haveY := false, false

	for _, field := range strings.Fields(s) {
		key, val, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			continue
		}
		switch key {
		case "x":
			x, haveX = n, true
		case "y":
			y, haveY = n, true
		}
	}

	if !haveX || !haveY {
		return 0, 0, fmt.Errorf("unexpected xdotool output: %q", s)
	}
	return x, y, nil
}
