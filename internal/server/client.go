package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// ControlClient calls a running clock's control service.
type ControlClient struct {
	getStatus     *connect.Client[GetStatusRequest, GetStatusResponse]
	cycleMode     *connect.Client[CycleModeRequest, EventResponse]
	toggleVersion *connect.Client[ToggleVersionRequest, EventResponse]
	setMode       *connect.Client[SetModeRequest, EventResponse]
	setVersion    *connect.Client[SetVersionRequest, EventResponse]
	refresh       *connect.Client[RefreshRequest, EventResponse]
	getPreview    *connect.Client[GetPreviewRequest, GetPreviewResponse]
}

func NewControlClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ControlClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &ControlClient{
		getStatus:     connect.NewClient[GetStatusRequest, GetStatusResponse](httpClient, baseURL+GetStatusProcedure, opts...),
		cycleMode:     connect.NewClient[CycleModeRequest, EventResponse](httpClient, baseURL+CycleModeProcedure, opts...),
		toggleVersion: connect.NewClient[ToggleVersionRequest, EventResponse](httpClient, baseURL+ToggleVersionProcedure, opts...),
		setMode:       connect.NewClient[SetModeRequest, EventResponse](httpClient, baseURL+SetModeProcedure, opts...),
		setVersion:    connect.NewClient[SetVersionRequest, EventResponse](httpClient, baseURL+SetVersionProcedure, opts...),
		refresh:       connect.NewClient[RefreshRequest, EventResponse](httpClient, baseURL+RefreshProcedure, opts...),
		getPreview:    connect.NewClient[GetPreviewRequest, GetPreviewResponse](httpClient, baseURL+GetPreviewProcedure, opts...),
	}
}

// NewDefaultControlClient talks to a clock listening on the given port.
func NewDefaultControlClient(host string, port int) *ControlClient {
	return NewControlClient(http.DefaultClient, fmt.Sprintf("http://%s:%d", host, port))
}

func (c *ControlClient) Status(ctx context.Context) (*GetStatusResponse, error) {
	res, err := c.getStatus.CallUnary(ctx, connect.NewRequest(&GetStatusRequest{}))
	if err != nil {
		return nil, fmt.Errorf("GetStatus() > %w", err)
	}
	return res.Msg, nil
}

func (c *ControlClient) CycleMode(ctx context.Context) (string, error) {
	res, err := c.cycleMode.CallUnary(ctx, connect.NewRequest(&CycleModeRequest{}))
	if err != nil {
		return "", fmt.Errorf("CycleMode() > %w", err)
	}
	return res.Msg.EventID, nil
}

func (c *ControlClient) ToggleVersion(ctx context.Context) (string, error) {
	res, err := c.toggleVersion.CallUnary(ctx, connect.NewRequest(&ToggleVersionRequest{}))
	if err != nil {
		return "", fmt.Errorf("ToggleVersion() > %w", err)
	}
	return res.Msg.EventID, nil
}

func (c *ControlClient) SetMode(ctx context.Context, mode string) (string, error) {
	res, err := c.setMode.CallUnary(ctx, connect.NewRequest(&SetModeRequest{Mode: mode}))
	if err != nil {
		return "", fmt.Errorf("SetMode(%s) > %w", mode, err)
	}
	return res.Msg.EventID, nil
}

func (c *ControlClient) SetVersion(ctx context.Context, version string) (string, error) {
	res, err := c.setVersion.CallUnary(ctx, connect.NewRequest(&SetVersionRequest{Version: version}))
	if err != nil {
		return "", fmt.Errorf("SetVersion(%s) > %w", version, err)
	}
	return res.Msg.EventID, nil
}

func (c *ControlClient) Refresh(ctx context.Context) (string, error) {
	res, err := c.refresh.CallUnary(ctx, connect.NewRequest(&RefreshRequest{}))
	if err != nil {
		return "", fmt.Errorf("Refresh() > %w", err)
	}
	return res.Msg.EventID, nil
}

func (c *ControlClient) Preview(ctx context.Context, includeImage bool) (*GetPreviewResponse, error) {
	res, err := c.getPreview.CallUnary(ctx, connect.NewRequest(&GetPreviewRequest{IncludeImage: includeImage}))
	if err != nil {
		return nil, fmt.Errorf("GetPreview() > %w", err)
	}
	return res.Msg, nil
}
