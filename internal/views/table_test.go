package views

import (
	"net/url"
	"testing"

	"sandboxdash/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestParseSorting(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Sorting
	}{
		{name: "empty keeps backend order", query: "", want: Sorting{}},
		{name: "ascending", query: "sort=name", want: Sorting{ColumnID: "name"}},
		{name: "descending", query: "sort=name&desc=1", want: Sorting{ColumnID: "name", Desc: true}},
		{name: "desc without sort is ignored", query: "desc=1", want: Sorting{}},
		{name: "garbage desc", query: "sort=status&desc=maybe", want: Sorting{ColumnID: "status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseSorting(values))
		})
	}
}

func TestSorting_NextCycles(t *testing.T) {
	s := Sorting{}
	s = s.Next("name")
	assert.Equal(t, Sorting{ColumnID: "name"}, s)
	s = s.Next("name")
	assert.Equal(t, Sorting{ColumnID: "name", Desc: true}, s)
	s = s.Next("name")
	assert.Equal(t, Sorting{}, s)

	assert.Equal(t, Sorting{ColumnID: "ipAddress"}, Sorting{ColumnID: "name", Desc: true}.Next("ipAddress"))
	assert.Equal(t, "desc=1&sort=name", Sorting{ColumnID: "name", Desc: true}.Encode())
}

func TestNewTable_Sorting(t *testing.T) {
	vms := []types.VM{
		{Name: "charlie", IPAddress: "10.0.0.3", UUID: "c"},
		{Name: "alpha", IPAddress: "10.0.0.1", UUID: "a"},
		{Name: "bravo", IPAddress: "10.0.0.2", UUID: "b"},
	}

	names := func(tbl Table[types.VM]) []string {
		out := make([]string, 0, len(tbl.Rows))
		for _, vm := range tbl.Rows {
			out = append(out, vm.Name)
		}
		return out
	}

	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, names(NewTable(VMColumns(), vms, Sorting{})))
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names(NewTable(VMColumns(), vms, Sorting{ColumnID: ColumnName})))
	assert.Equal(t, []string{"charlie", "bravo", "alpha"}, names(NewTable(VMColumns(), vms, Sorting{ColumnID: ColumnName, Desc: true})))

	// actions has no accessor, unknown columns are ignored
	tbl := NewTable(VMColumns(), vms, Sorting{ColumnID: ColumnActions})
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, names(tbl))
	assert.Equal(t, Sorting{}, tbl.Sorting)
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, names(NewTable(VMColumns(), vms, Sorting{ColumnID: "nope"})))

	// input slice untouched
	assert.Equal(t, "charlie", vms[0].Name)
}

func TestNewTable_StableSort(t *testing.T) {
	sessions := []types.TmuxSession{
		{ID: "s1", Status: "live"},
		{ID: "s2", Status: "dead"},
		{ID: "s3", Status: "live"},
		{ID: "s4", Status: "dead"},
	}

	tbl := NewTable(SessionColumns(), sessions, Sorting{ColumnID: ColumnStatus})

	ids := make([]string, 0, len(tbl.Rows))
	for _, s := range tbl.Rows {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"s2", "s4", "s1", "s3"}, ids)
}

func TestTable_HeaderCountAndIndicator(t *testing.T) {
	vmTable := NewTable(VMColumns(), nil, Sorting{ColumnID: ColumnName, Desc: true})
	assert.Equal(t, 3, vmTable.HeaderCount())
	assert.True(t, vmTable.Empty())
	assert.Equal(t, "▼", vmTable.SortIndicator(ColumnName))
	assert.Equal(t, "", vmTable.SortIndicator(ColumnIPAddress))
	assert.Equal(t, "", vmTable.SortLink(ColumnName))
	assert.Equal(t, "sort=ipAddress", vmTable.SortLink(ColumnIPAddress))

	assert.Equal(t, 4, NewTable(SessionColumns(), nil, Sorting{}).HeaderCount())
}

func TestBadgeVariant(t *testing.T) {
	assert.Equal(t, BadgeDefault, BadgeVariant("live"))
	assert.Equal(t, BadgeSecondary, BadgeVariant("Live"))
	assert.Equal(t, BadgeSecondary, BadgeVariant("dead"))
	assert.Equal(t, BadgeSecondary, BadgeVariant(""))
	assert.Equal(t, BadgeSecondary, BadgeVariant("live "))
}

func TestCommandLabel(t *testing.T) {
	assert.Equal(t, "Command 1", CommandLabel(0))
	assert.Equal(t, "Command 12", CommandLabel(11))
}
