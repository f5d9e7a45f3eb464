package utils

// AuthRevokedPrefix is the prefix of revoked token keys in the auth cache.
const AuthRevokedPrefix = "auth:revoked:"

// Context key the auth middleware stores the caller's id under.
const ContextUserID = "userID"

// SessionTimeLayout is the format of the "now" query parameter.
const SessionTimeLayout = "2006-01-02 15:04:05"
