package types

// ---- Clock state (retained) ----

// ModeValue is published on clock/state/mode.
type ModeValue struct {
	Mode string `json:"mode"` // "run", "halt", "step"
	TS   int64  `json:"ts_ms"`
}

// OutputValue is published on clock/state/output.
type OutputValue struct {
	State     string `json:"state"`    // "hardware", "software", "halted", "disconnected"
	Strategy  string `json:"strategy"` // strategy of the current spec
	Parameter uint32 `json:"parameter"`
	Sample    uint8  `json:"sample"`
	MilliHz   uint64 `json:"mhz"`
	Connected bool   `json:"oscillator_connected"`
	TS        int64  `json:"ts_ms"`
}

// StatsValue is published on clock/state/stats.
type StatsValue struct {
	Switches   uint32 `json:"switches"`
	Reconfigs  uint32 `json:"reconfigs"`
	HalfCycles uint32 `json:"half_cycles"`
	Aborts     uint32 `json:"aborts"`
	Pulses     uint32 `json:"pulses"`
	TS         int64  `json:"ts_ms"`
}

// ---- Service lifecycle (retained) ----

type ServiceState struct {
	Level  string `json:"level"`  // "starting", "running", "stopped"
	Status string `json:"status"` // short code, errcode string on failure
	Error  string `json:"error,omitempty"`
	TS     int64  `json:"ts_ms"`
}

// HeartbeatConfig is supplied on config/heartbeat.
type HeartbeatConfig struct {
	Interval Duration `json:"interval"`
}
