package gate

import (
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
)

type State int

const (
	Allowed State = iota
	BlockedSelfPermanent
	BlockedSelfTimed
	BlockedDeviceMatch
)

func (s State) String() string {
	switch s {
	case Allowed:
		return "ALLOWED"
	case BlockedSelfPermanent:
		return "BLOCKED_SELF_PERMANENT"
	case BlockedSelfTimed:
		return "BLOCKED_SELF_TIMED"
	case BlockedDeviceMatch:
		return "BLOCKED_DEVICE_MATCH"
	default:
		return "UNKNOWN"
	}
}

const (
	VerdictAllow = "ALLOW"
	VerdictBlock = "BLOCK"
)

type Decision struct {
	State State
}

func (d Decision) Blocked() bool {
	return d.State != Allowed
}

func (d Decision) Verdict() string {
	if d.Blocked() {
		return VerdictBlock
	}
	return VerdictAllow
}

// Effects are the bookkeeping writes an evaluation asks for. They never
// change the decision itself.
type Effects struct {
	BackfillDevice bool
	AutoUnban      bool
}

// EvaluateSelf classifies the account's own ban state at now. A timed ban
// counts as lifted only once now is strictly after its expiry.
func EvaluateSelf(b domain.BanState, now time.Time) (State, Effects) {
	eff := Effects{BackfillDevice: b.DeviceID == nil || *b.DeviceID == ""}

	switch {
	case !b.Banned:
		return Allowed, eff
	case b.Permanent():
		return BlockedSelfPermanent, eff
	case b.Expired(now):
		eff.AutoUnban = true
		return Allowed, eff
	default:
		return BlockedSelfTimed, eff
	}
}

// Decide combines the account's own state with the number of banned
// accounts sharing its device fingerprint. A matched account's expiry is not
// re-checked: any banned account on the device blocks.
func Decide(self State, deviceMatches int) Decision {
	if self != Allowed {
		return Decision{State: self}
	}
	if deviceMatches > 0 {
		return Decision{State: BlockedDeviceMatch}
	}
	return Decision{State: Allowed}
}
