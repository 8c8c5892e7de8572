package views

import (
	"strconv"

	"sandboxdash/internal/types"
)

// Column IDs
const (
	ColumnName      = "name"
	ColumnIPAddress = "ipAddress"
	ColumnActions   = "actions"
	ColumnID        = "id"
	ColumnStatus    = "status"
	ColumnVMCloneID = "vmCloneId"
)

// Badge variants
const (
	BadgeDefault   = "default"
	BadgeSecondary = "secondary"
)

// VMColumns is the column set of the VM table
func VMColumns() []Column[types.VM] {
	return []Column[types.VM]{
		{ID: ColumnName, Header: "Name", Accessor: func(vm types.VM) string { return vm.Name }, Sortable: true},
		{ID: ColumnIPAddress, Header: "IP Address", Accessor: func(vm types.VM) string { return vm.IPAddress }, Sortable: true},
		{ID: ColumnActions, Header: "Actions"},
	}
}

// SessionColumns is the column set of the tmux session table
func SessionColumns() []Column[types.TmuxSession] {
	return []Column[types.TmuxSession]{
		{ID: ColumnID, Header: "UUID", Accessor: func(s types.TmuxSession) string { return s.ID }, Sortable: true},
		{ID: ColumnStatus, Header: "Status", Accessor: func(s types.TmuxSession) string { return s.Status }, Sortable: true},
		{ID: ColumnVMCloneID, Header: "VM Clone ID", Accessor: func(s types.TmuxSession) string { return s.VMCloneID }, Sortable: true},
		{ID: ColumnActions, Header: "Actions"},
	}
}

// BadgeVariant maps a session status to its badge style. Only the exact
// string "live" gets the primary treatment.
func BadgeVariant(status string) string {
	if status == types.SessionStatusLive {
		return BadgeDefault
	}
	return BadgeSecondary
}

// CommandLabel is the 1-based heading of a command block
func CommandLabel(index int) string {
	return "Command " + strconv.Itoa(index+1)
}
