package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	screenshotIface = "org.freedesktop.portal.Screenshot"
	requestIface    = "org.freedesktop.portal.Request"

	portalTimeout = 30 * time.Second
)

// portalCapturer takes screenshots through the XDG Desktop Portal, which
// works on Wayland where direct X11 capture does not.
type portalCapturer struct {
	conn   *dbus.Conn
	sender string
	seq    atomic.Uint64
}

func newPortalCapturer() (Capturer, string, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, "", fmt.Errorf("connecting to session bus: %w", err)
	}

	// The version property doubles as an availability probe.
	portal := conn.Object(portalDest, dbus.ObjectPath(portalPath))
	if _, err := portal.GetProperty(screenshotIface + ".version"); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("screenshot portal unavailable: %w", err)
	}

	return &portalCapturer{
		conn:   conn,
		sender: senderToToken(conn.Names()[0]),
	}, "portal", nil
}

func (c *portalCapturer) CaptureToFile(path string) error {
	reqToken := fmt.Sprintf("pixelpick_req_%d", c.seq.Add(1))
	reqPath := dbus.ObjectPath(fmt.Sprintf("/org/freedesktop/portal/desktop/request/%s/%s", c.sender, reqToken))

	sigCh := subscribeSignal(c.conn, reqPath)
	defer c.conn.RemoveSignal(sigCh)

	portal := c.conn.Object(portalDest, dbus.ObjectPath(portalPath))
	call := portal.Call(screenshotIface+".Screenshot", 0, "", map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(reqToken),
		"interactive":  dbus.MakeVariant(false),
	})
	if call.Err != nil {
		return fmt.Errorf("Screenshot: %w", call.Err)
	}

	resp, err := waitForResponse(sigCh, portalTimeout)
	if err != nil {
		return fmt.Errorf("Screenshot response: %w", err)
	}

	uri, ok := resp["uri"]
	if !ok {
		return fmt.Errorf("Screenshot: no uri in response")
	}
	src, ok := uri.Value().(string)
	if !ok {
		return fmt.Errorf("Screenshot: unexpected uri type: %T", uri.Value())
	}

	srcPath, err := fileURIToPath(src)
	if err != nil {
		return err
	}

	// The portal writes the capture to its own location; move it to ours.
	return moveFile(srcPath, path)
}

func (c *portalCapturer) Close() error {
	return c.conn.Close()
}

// subscribeSignal registers a D-Bus signal match for the portal Response signal
// at the given path and returns a channel that receives matching signals.
func subscribeSignal(conn *dbus.Conn, path dbus.ObjectPath) chan *dbus.Signal {
	ch := make(chan *dbus.Signal, 1)
	conn.Signal(ch)
	conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0,
		fmt.Sprintf("type='signal',interface='%s',member='Response',path='%s'", requestIface, path))
	return ch
}

// waitForResponse waits for a portal Response signal and returns the results map.
// A non-zero response code indicates the user denied or the request failed.
func waitForResponse(ch chan *dbus.Signal, timeout time.Duration) (map[string]dbus.Variant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		select {
		case sig := <-ch:
			if sig == nil {
				return nil, fmt.Errorf("signal channel closed")
			}
			if len(sig.Body) < 2 {
				continue
			}
			code, ok := sig.Body[0].(uint32)
			if !ok {
				continue
			}
			if code != 0 {
				return nil, fmt.Errorf("portal request denied (code %d)", code)
			}
			results, ok := sig.Body[1].(map[string]dbus.Variant)
			if !ok {
				return nil, fmt.Errorf("unexpected response type")
			}
			return results, nil
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for portal response")
		}
	}
}

// senderToToken converts a D-Bus sender name like ":1.42" to "1_42" for use
// in request object paths.
func senderToToken(sender string) string {
	s := strings.TrimPrefix(sender, ":")
	return strings.ReplaceAll(s, ".", "_")
}

// fileURIToPath converts a file:// URI to a filesystem path.
func fileURIToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parsing capture uri %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unexpected capture uri scheme %q", u.Scheme)
	}
	return u.Path, nil
}

// moveFile renames src to dst, falling back to copy + remove when the two
// paths are on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening portal capture: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating capture file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying portal capture: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
