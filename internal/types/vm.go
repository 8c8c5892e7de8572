package types

// VM is a virtual machine as reported by the virsh sandbox API
type VM struct {
	Name      string `json:"name" example:"ubuntu-base"`
	IPAddress string `json:"ipAddress" example:"192.168.122.10"`
	UUID      string `json:"uuid" example:"4b1c2a9e-8f3d-4c55-9d7e-0a1b2c3d4e5f"`
}

// SandboxCloneRequest asks the virsh sandbox API to clone a source VM
type SandboxCloneRequest struct {
	UUID string `json:"uuid"`
}

// SandboxCloneResponse is whatever the backend returns for a clone. Only the
// fact that the call settled matters; the fields are filled when present.
type SandboxCloneResponse struct {
	Name      string `json:"name,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	UUID      string `json:"uuid,omitempty"`
}
