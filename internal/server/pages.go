package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sandboxdash/internal/logger"
	"sandboxdash/internal/notify"
	"sandboxdash/internal/query"
	"sandboxdash/internal/types"
	"sandboxdash/internal/views"

	"github.com/labstack/echo/v4"
)

// fragmentStatus is the status a fragment is served with. Failed fragments
// still carry their markup so the shell can show the failure message.
func fragmentStatus[T any](res query.Result[T]) int {
	if res.IsError() {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

// pathParam returns the decoded path parameter. echo matches against the
// raw path when the request escapes a reserved character, leaving the
// value escaped.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// sinceParam names the query value carrying the notification replay point
const sinceParam = "since"

// parseSince reads ?since=<unix-ms>; ok is false when it is absent or malformed
func parseSince(c echo.Context) (int64, bool) {
	ms, err := strconv.ParseInt(c.QueryParam(sinceParam), 10, 64)
	if err != nil || ms <= 0 {
		return 0, false
	}
	return ms, true
}

// newPage stamps the replay point for the page's notification stream. A
// redirect after a clone passes its own since so notifications published
// before this render still reach the page.
func newPage(c echo.Context, title, nav string) views.Page {
	since, ok := parseSince(c)
	if !ok {
		since = time.Now().UnixMilli()
	}
	return views.Page{Title: title, Nav: nav, Since: since}
}

// fragmentURL carries the page's sorting over to the fragment request
func fragmentURL(path string, sorting views.Sorting) string {
	if encoded := sorting.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func (s *Server) handleVMsPage(c echo.Context) error {
	sorting := views.ParseSorting(c.QueryParams())

	return c.Render(http.StatusOK, views.PageVMs, views.LoaderPage{
		Page:        newPage(c, "VMs", views.NavVMs),
		Heading:     "Virtual Machines",
		Description: "Source VMs available for sandbox cloning",
		FragmentURL: fragmentURL("/partials/vms", sorting),
		LoadingText: "Loading VMs...",
		FailureText: "Failed to load VMs",
	})
}

func (s *Server) handleVMTablePartial(c echo.Context) error {
	res := query.Run(c.Request().Context(), s.vms.ListVMs)
	if res.IsError() {
		logger.GetLogger(c).WithError(res.Err()).Warn("Failed to load VMs")
	}

	fragment := views.NewVMTableFragment(res, views.ParseSorting(c.QueryParams()), s.tracker.InFlight())
	return c.Render(fragmentStatus(res), views.FragmentVMTable, fragment)
}

// handleCloneForm starts a clone from the VM table and sends the browser
// back to the list, where the row now shows as cloning. The redirect
// carries the request time so the list page replays the outcome even when
// the clone settles before its notification stream connects.
func (s *Server) handleCloneForm(c echo.Context) error {
	since := time.Now().UnixMilli()
	vm := types.VM{
		UUID: pathParam(c, "uuid"),
		Name: c.FormValue("name"),
	}

	if err := s.tracker.Start(vm); err != nil {
		logger.GetLogger(c).WithError(err).Warn("Clone rejected")
		s.hub.Publish(cloneRejected(vm, err))
	}

	return c.Redirect(http.StatusSeeOther, "/?"+sinceParam+"="+strconv.FormatInt(since, 10))
}

func (s *Server) handleSessionsPage(c echo.Context) error {
	sorting := views.ParseSorting(c.QueryParams())

	return c.Render(http.StatusOK, views.PageTmux, views.LoaderPage{
		Page:        newPage(c, "Tmux Sessions", views.NavTmux),
		Heading:     "Tmux Sessions",
		Description: "Sessions reported by the tmux client",
		FragmentURL: fragmentURL("/partials/tmux", sorting),
		LoadingText: "Loading Tmux sessions...",
		FailureText: "Failed to load Tmux sessions",
	})
}

func (s *Server) handleSessionTablePartial(c echo.Context) error {
	res := query.Run(c.Request().Context(), s.sessions.ListSessions)
	if res.IsError() {
		logger.GetLogger(c).WithError(res.Err()).Warn("Failed to load tmux sessions")
	}

	fragment := views.NewSessionTableFragment(res, views.ParseSorting(c.QueryParams()))
	return c.Render(fragmentStatus(res), views.FragmentSessionTable, fragment)
}

func (s *Server) handleSessionDetailPage(c echo.Context) error {
	id := pathParam(c, "id")

	return c.Render(http.StatusOK, views.PageSessionDetail, views.LoaderPage{
		Page:        newPage(c, "Tmux Session Details", views.NavTmux),
		FragmentURL: "/partials/tmux/" + url.PathEscape(id),
		LoadingText: "Loading session details...",
		FailureText: "Failed to load session details",
	})
}

func (s *Server) handleSessionDetailPartial(c echo.Context) error {
	id := pathParam(c, "id")

	res := query.Run(c.Request().Context(), func(ctx context.Context) (*types.TmuxSessionDetail, error) {
		return s.sessions.GetSession(ctx, id)
	})
	if res.IsError() {
		logger.GetLogger(c).WithError(res.Err()).WithField("session_id", id).Warn("Failed to load session details")
	}

	return c.Render(fragmentStatus(res), views.FragmentSessionDetail, views.SessionDetailFragment{
		ID:     id,
		Result: res,
	})
}

func cloneRejected(vm types.VM, err error) notify.Notification {
	name := vm.Name
	if name == "" {
		name = vm.UUID
	}
	return notify.Notification{
		Level:   notify.LevelError,
		Subject: vm.UUID,
		Message: fmt.Sprintf("Failed to clone %s: %v", name, err),
	}
}
