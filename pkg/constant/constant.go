package constant

const (
	// SessionSlotKey names the single durable slot that holds the signed-in identity.
	SessionSlotKey = "user_session"
	// InstanceCookie identifies a browser instance when the slot lives in Redis.
	InstanceCookie = "instance_id"

	BannedPath = "/banned"

	MinPasswordLength = 6
	// bcrypt only reads the first 72 bytes.
	MaxPasswordBytes  = 72
	MinUsernameLength = 3
	MaxUsernameLength = 32

	MaxBanDurationDays = 36500

	PermanentBanLabel = "Permanent"
	ExpiredBanLabel   = "Expired (refresh page)"
)

const (
	EventBanApplied  = "ban.applied"
	EventBanLifted   = "ban.lifted"
	EventBanExpired  = "ban.expired"
	EventDeviceBound = "device.bound"
)
