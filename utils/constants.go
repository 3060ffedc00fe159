// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// CartKeyPrefix is the prefix for per-customer cart keys.
const CartKeyPrefix = "cart:"

// DraftKeyPrefix is the prefix for per-customer booking draft keys.
const DraftKeyPrefix = "bookingDraft:"

// WizardKeyPrefix is the prefix for wizard session keys.
const WizardKeyPrefix = "wizardSession:"

// SessionTTL bounds the lifetime of carts, drafts and wizard sessions.
// All three are scoped to one signed-in browsing session.
const SessionTTL = 12 * time.Hour
