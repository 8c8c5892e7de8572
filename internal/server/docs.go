package server

// @title sandboxdash API
// @version 1.0
// @description JSON mirror of the sandbox dashboard: VMs and sandbox clones from the virsh sandbox API, tmux sessions from the tmux client API.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8090
// @BasePath /
// @schemes http https
