// Package server provides the Connect RPC control service for the clock.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/bibleclock/internal/scheduler"
	"github.com/at-ishikawa/bibleclock/internal/selector"
)

//go:generate mockgen -source=control_handler.go -destination=../mocks/server/mock_control_handler.go -package=mock_server

const ControlServiceName = "bibleclock.v1.ControlService"

const (
	GetStatusProcedure     = "/" + ControlServiceName + "/GetStatus"
	CycleModeProcedure     = "/" + ControlServiceName + "/CycleMode"
	ToggleVersionProcedure = "/" + ControlServiceName + "/ToggleVersion"
	SetModeProcedure       = "/" + ControlServiceName + "/SetMode"
	SetVersionProcedure    = "/" + ControlServiceName + "/SetVersion"
	RefreshProcedure       = "/" + ControlServiceName + "/Refresh"
	GetPreviewProcedure    = "/" + ControlServiceName + "/GetPreview"
)

// Scheduler is the part of the scheduler the service drives. State changes
// only ever go through Submit.
type Scheduler interface {
	Submit(ev scheduler.Event) error
	Status() scheduler.Status
}

// Preview locates the most recently displayed image.
type Preview interface {
	Latest() (string, bool)
}

type ControlHandler struct {
	scheduler Scheduler
	preview   Preview
}

func NewControlHandler(s Scheduler, preview Preview) *ControlHandler {
	return &ControlHandler{
		scheduler: s,
		preview:   preview,
	}
}

func (h *ControlHandler) GetStatus(
	ctx context.Context,
	req *connect.Request[GetStatusRequest],
) (*connect.Response[GetStatusResponse], error) {
	st := h.scheduler.Status()
	res := &GetStatusResponse{
		Mode:         string(st.Mode),
		Version:      string(st.Version),
		Ticks:        st.Ticks,
		Renders:      st.Renders,
		RenderErrors: st.RenderErrors,
		Events:       st.Events,
		StartedAt:    st.StartedAt,
		LastRenderAt: st.LastRenderAt,
		LastError:    st.LastError,
	}
	if st.HasPayload {
		p := st.Payload
		if p.Reference.Book != "" {
			res.Reference = p.Reference.String()
		}
		res.Label = p.Label
		res.Text = p.Text
		res.AltText = p.AltText
		res.Description = p.Description
		res.DisplayTime = p.DisplayTime()
		res.Placeholder = p.Placeholder
	}
	return connect.NewResponse(res), nil
}

func (h *ControlHandler) CycleMode(
	ctx context.Context,
	req *connect.Request[CycleModeRequest],
) (*connect.Response[EventResponse], error) {
	return h.submit(scheduler.NewEvent(scheduler.EventCycleMode, source(req.Peer())))
}

func (h *ControlHandler) ToggleVersion(
	ctx context.Context,
	req *connect.Request[ToggleVersionRequest],
) (*connect.Response[EventResponse], error) {
	return h.submit(scheduler.NewEvent(scheduler.EventToggleVersion, source(req.Peer())))
}

func (h *ControlHandler) SetMode(
	ctx context.Context,
	req *connect.Request[SetModeRequest],
) (*connect.Response[EventResponse], error) {
	mode, err := selector.ParseMode(req.Msg.Mode)
	if err != nil {
		return nil, invalidArgument("mode", err)
	}
	return h.submit(scheduler.SetModeEvent(mode, source(req.Peer())))
}

func (h *ControlHandler) SetVersion(
	ctx context.Context,
	req *connect.Request[SetVersionRequest],
) (*connect.Response[EventResponse], error) {
	version, err := selector.ParseVersion(req.Msg.Version)
	if err != nil {
		return nil, invalidArgument("version", err)
	}
	return h.submit(scheduler.SetVersionEvent(version, source(req.Peer())))
}

// invalidArgument attaches a BadRequest detail naming the rejected field.
func invalidArgument(field string, err error) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{{
			Field:       field,
			Description: err.Error(),
		}},
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

func (h *ControlHandler) Refresh(
	ctx context.Context,
	req *connect.Request[RefreshRequest],
) (*connect.Response[EventResponse], error) {
	return h.submit(scheduler.NewEvent(scheduler.EventRefresh, source(req.Peer())))
}

func (h *ControlHandler) GetPreview(
	ctx context.Context,
	req *connect.Request[GetPreviewRequest],
) (*connect.Response[GetPreviewResponse], error) {
	if h.preview == nil {
		return nil, connect.NewError(connect.CodeUnimplemented, errors.New("no preview is configured"))
	}
	path, ok := h.preview.Latest()
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("nothing has been displayed yet"))
	}

	res := &GetPreviewResponse{Path: path}
	if req.Msg.IncludeImage {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("read preview(%s): %w", path, err))
		}
		res.PNG = data
	}
	return connect.NewResponse(res), nil
}

func (h *ControlHandler) submit(ev scheduler.Event) (*connect.Response[EventResponse], error) {
	if err := h.scheduler.Submit(ev); err != nil {
		if errors.Is(err, scheduler.ErrQueueFull) {
			return nil, connect.NewError(connect.CodeResourceExhausted, err)
		}
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("submit %s: %w", ev.Kind, err))
	}
	return connect.NewResponse(&EventResponse{EventID: ev.ID.String()}), nil
}

func source(peer connect.Peer) string {
	if peer.Addr == "" {
		return "rpc"
	}
	return "rpc:" + peer.Addr
}

// NewControlServiceHandler returns the path prefix and handler to mount on
// a mux.
func NewControlServiceHandler(h *ControlHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetStatusProcedure, connect.NewUnaryHandler(GetStatusProcedure, h.GetStatus, opts...))
	mux.Handle(CycleModeProcedure, connect.NewUnaryHandler(CycleModeProcedure, h.CycleMode, opts...))
	mux.Handle(ToggleVersionProcedure, connect.NewUnaryHandler(ToggleVersionProcedure, h.ToggleVersion, opts...))
	mux.Handle(SetModeProcedure, connect.NewUnaryHandler(SetModeProcedure, h.SetMode, opts...))
	mux.Handle(SetVersionProcedure, connect.NewUnaryHandler(SetVersionProcedure, h.SetVersion, opts...))
	mux.Handle(RefreshProcedure, connect.NewUnaryHandler(RefreshProcedure, h.Refresh, opts...))
	mux.Handle(GetPreviewProcedure, connect.NewUnaryHandler(GetPreviewProcedure, h.GetPreview, opts...))
	return "/" + ControlServiceName + "/", mux
}
