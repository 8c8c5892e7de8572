package types

// SessionStatusLive is the only status rendered with the default badge
const SessionStatusLive = "live"

// TmuxSession is one row of the tmux session listing
type TmuxSession struct {
	ID        string `json:"id" example:"abc-123"`
	Status    string `json:"status" example:"live"`
	VMCloneID string `json:"vmCloneId" example:"sbx-7f3a"`
}

// CommandOutput is one command executed in a session and its captured output
type CommandOutput struct {
	Command string `json:"command" example:"uname -a"`
	Output  string `json:"output" example:"Linux sandbox 6.1.0 x86_64 GNU/Linux"`
}

// TmuxSessionDetail is a single session with its full transcript
type TmuxSessionDetail struct {
	ID            string          `json:"id" example:"abc-123"`
	Status        string          `json:"status" example:"live"`
	NumberOfPanes int             `json:"numberOfPanes" example:"2"`
	Commands      []CommandOutput `json:"commands"`
}

// IsLive reports whether the session status is exactly "live"
func (s TmuxSession) IsLive() bool {
	return s.Status == SessionStatusLive
}

// IsLive reports whether the session status is exactly "live"
func (s TmuxSessionDetail) IsLive() bool {
	return s.Status == SessionStatusLive
}
