package views

import (
	"time"

	"sandboxdash/internal/interfaces"
	"sandboxdash/internal/notify"
	"sandboxdash/internal/query"
	"sandboxdash/internal/types"

	"github.com/docker/go-units"
)

// Navigation sections
const (
	NavVMs      = "vms"
	NavTmux     = "tmux"
	NavActivity = "activity"
)

// Page is the data every layout render needs
type Page struct {
	Title string
	Nav   string
	// Since is the unix-ms server time the notification stream replays from;
	// zero means live notifications only
	Since int64
}

// LoaderPage is a page shell whose body is fetched as a fragment. The
// loading text is shown until the fragment arrives.
type LoaderPage struct {
	Page
	Heading     string
	Description string
	FragmentURL string
	LoadingText string
	FailureText string
}

// VMTableFragment is the body of the VM list
type VMTableFragment struct {
	Result   query.Result[[]types.VM]
	Table    Table[types.VM]
	InFlight string
}

// NewVMTableFragment sorts the loaded VMs, if any
func NewVMTableFragment(res query.Result[[]types.VM], sorting Sorting, inFlight string) VMTableFragment {
	return VMTableFragment{
		Result:   res,
		Table:    NewTable(VMColumns(), res.OrElse(nil), sorting),
		InFlight: inFlight,
	}
}

// IsCloning reports whether the row for uuid is disabled
func (f VMTableFragment) IsCloning(uuid string) bool {
	return uuid != "" && uuid == f.InFlight
}

// SessionTableFragment is the body of the tmux session list
type SessionTableFragment struct {
	Result query.Result[[]types.TmuxSession]
	Table  Table[types.TmuxSession]
}

// NewSessionTableFragment sorts the loaded sessions, if any
func NewSessionTableFragment(res query.Result[[]types.TmuxSession], sorting Sorting) SessionTableFragment {
	return SessionTableFragment{
		Result: res,
		Table:  NewTable(SessionColumns(), res.OrElse(nil), sorting),
	}
}

// SessionDetailFragment is the body of the session detail page
type SessionDetailFragment struct {
	ID     string
	Result query.Result[*types.TmuxSessionDetail]
}

// Session returns the loaded detail, or nil
func (f SessionDetailFragment) Session() *types.TmuxSessionDetail {
	return f.Result.OrElse(nil)
}

// ActivityRow is one clone request with display-ready durations
type ActivityRow struct {
	interfaces.CloneRecord
	Age      string
	Duration string
}

// ActivityPage lists recent clone requests
type ActivityPage struct {
	Page
	Enabled       bool
	Result        query.Result[[]ActivityRow]
	Notifications []notify.Notification
}

// NewActivityRows formats records relative to now
func NewActivityRows(records []interfaces.CloneRecord, now time.Time) []ActivityRow {
	rows := make([]ActivityRow, 0, len(records))
	for _, r := range records {
		row := ActivityRow{
			CloneRecord: r,
			Age:         units.HumanDuration(now.Sub(r.CreatedAt)) + " ago",
		}
		if r.FinishedAt != nil {
			row.Duration = r.FinishedAt.Sub(r.CreatedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, row)
	}
	return rows
}

// ErrorPage is rendered for page routes that fail outside a fragment
type ErrorPage struct {
	Page
	Status  int
	Message string
}
