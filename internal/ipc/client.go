package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/glasspane/glasspane/internal/apps"
	"github.com/glasspane/glasspane/internal/runtimepath"
)

// Client handles IPC communication with a running shell session
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default control socket.
func NewClient() *Client {
	socketPath, err := runtimepath.ControlSocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientForSocket(socketPath)
}

// NewClientForSocket creates a client for an explicit socket path.
func NewClientForSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session: %w (is a session running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("session error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves session status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// ListWindows retrieves the windows of the last composited frame
func (c *Client) ListWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWindows})
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return &data, nil
}

// ListWorkspaces retrieves workspace metadata and the active index
func (c *Client) ListWorkspaces() (*WorkspacesData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWorkspaces})
	if err != nil {
		return nil, err
	}

	var data WorkspacesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse workspaces data: %w", err)
	}
	return &data, nil
}

// SwitchWorkspace asks the session to activate a workspace by index
func (c *Client) SwitchWorkspace(index int) error {
	payload, err := json.Marshal(SwitchWorkspacePayload{Index: index})
	if err != nil {
		return fmt.Errorf("failed to marshal switch payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandSwitchWorkspace, Payload: payload})
	return err
}

// ListBackgrounds retrieves the renderer background registry
func (c *Client) ListBackgrounds() (*BackgroundsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListBackgrounds})
	if err != nil {
		return nil, err
	}

	var data BackgroundsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse backgrounds data: %w", err)
	}
	return &data, nil
}

// SetBackground selects a renderer background by name
func (c *Client) SetBackground(name string) error {
	payload, err := json.Marshal(SetBackgroundPayload{Name: name})
	if err != nil {
		return fmt.Errorf("failed to marshal background payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandSetBackground, Payload: payload})
	return err
}

// ListApps retrieves the application registry
func (c *Client) ListApps() ([]apps.App, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListApps})
	if err != nil {
		return nil, err
	}

	var data []apps.App
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse apps data: %w", err)
	}
	return data, nil
}

// LaunchApp asks the supervisor (via the session) to launch an app
func (c *Client) LaunchApp(appID string, focus bool) error {
	payload, err := json.Marshal(LaunchAppPayload{AppID: appID, Focus: focus})
	if err != nil {
		return fmt.Errorf("failed to marshal launch payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandLaunchApp, Payload: payload})
	return err
}

// FocusWindow asks the supervisor (via the session) to focus a window
func (c *Client) FocusWindow(id uint64) error {
	payload, err := json.Marshal(FocusWindowPayload{WindowID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal focus payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandFocusWindow, Payload: payload})
	return err
}

// SendInput forwards text input to the supervisor
func (c *Client) SendInput(text string) error {
	payload, err := json.Marshal(SendInputPayload{Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal input payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandSendInput, Payload: payload})
	return err
}

// Ping checks if a session is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
